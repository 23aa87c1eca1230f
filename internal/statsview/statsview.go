// Package statsview serves runtime statistics of the viewer over HTTP.
//
// Underlying functionality provided by "github.com/go-echarts/statsview".
// After launch, graphical statistics are viewable at
//
//	<addr>/debug/statsview
//
// and standard Go pprof statistics at <addr>/debug/pprof/.
package statsview

import (
	"log"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
)

const url = "/debug/statsview"

// Launch starts the stats server on addr. The returned function stops it.
func Launch(addr string) (stop func()) {
	viewer.SetConfiguration(viewer.WithAddr(addr))
	mgr := statsview.New()
	go mgr.Start()

	log.Printf("stats server available at http://%s%s", addr, url)
	return mgr.Stop
}
