// Package diagnostics provides runtime introspection of the emulator process.
package diagnostics

import (
	"fmt"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// StatsURL is the path that the statistics are served on.
const StatsURL = "/debug/statsview"

// LaunchStats serves runtime statistics of the process like memory usage
// and goroutine counts on the address in a new goroutine.
func LaunchStats(logger *log.Logger, address string) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(address))
		mgr := statsview.New()
		mgr.Start()
	}()

	logger.Info("Stats server available", log.String("url", "http://"+address+StatsURL))
}

// WriteStateGraph writes a graphviz digraph of the passed values to the file.
// Values should be passed as pointers to include referenced structures.
func WriteStateGraph(fileName string, values ...any) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating file '%s': %w", fileName, err)
	}

	memviz.Map(file, values...)

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file '%s': %w", fileName, err)
	}
	return nil
}
