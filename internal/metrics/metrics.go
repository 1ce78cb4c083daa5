package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CirclesCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "circles_created_total",
			Help: "Total circles created",
		},
	)

	InvitationsSent = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "invitations_sent_total",
			Help: "Total invitations inserted",
		},
	)
	InvitationsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "invitations_resolved_total",
			Help: "Invitations accepted or declined",
		},
		[]string{"outcome"}, // accepted|declined
	)

	RotationCommits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rotation_commits_total",
			Help: "Member position batch commits",
		},
	)
)

// Handler serves /metrics.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(CirclesCreated)
	prometheus.MustRegister(InvitationsSent)
	prometheus.MustRegister(InvitationsResolved)
	prometheus.MustRegister(RotationCommits)
}
