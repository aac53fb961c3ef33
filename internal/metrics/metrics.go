package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	MutationsApplied = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "learninghub", Name: "mutations_total", Help: "Committed store mutations",
	}, []string{"operation"})
	SyncPushes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "learninghub", Name: "sync_pushes_total", Help: "Cloud push attempts",
	}, []string{"result"})
	SyncPulls = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "learninghub", Name: "sync_pulls_total", Help: "Cloud pull attempts",
	}, []string{"result"})
)

func init() {
	prometheus.MustRegister(MutationsApplied, SyncPushes, SyncPulls)
}

func Handler() http.Handler { return promhttp.Handler() }
