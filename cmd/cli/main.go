// tztail - Log Timestamp Timezone Rewriter
//
// tztail reads log lines from files or standard input and rewrites the first
// timestamp on each line into a target timezone. Lines without a recognizable
// timestamp pass through unchanged.
package main

import (
	"os"
	_ "time/tzdata"

	"github.com/ccollicutt/tztail/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
