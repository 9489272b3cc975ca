package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CommentsHidden counts comments hidden by a cascade, by trigger.
	CommentsHidden = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formacao_comments_hidden_total",
		Help: "Total number of comments hidden by cascade",
	}, []string{"trigger"})

	// ClosureTruncations counts descendant walks that stopped at the depth ceiling or on a cycle.
	ClosureTruncations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "formacao_comment_closure_truncations_total",
		Help: "Total number of comment closures truncated by the depth ceiling or a parent cycle",
	})

	// ReportsResolved counts report resolutions by final state and target kind.
	ReportsResolved = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formacao_reports_resolved_total",
		Help: "Total number of resolved reports",
	}, []string{"state", "target"})

	// VotesCast counts vote mutations by outcome (insert, toggle_off, flip).
	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "formacao_votes_cast_total",
		Help: "Total number of vote mutations by outcome",
	}, []string{"outcome"})

	// CoursesExpired counts asynchronous courses lazily marked invisible.
	CoursesExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "formacao_courses_expired_total",
		Help: "Total number of asynchronous courses hidden after their end date",
	})
)
