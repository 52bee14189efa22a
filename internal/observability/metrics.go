package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	usersCreatedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "api",
		Name:      "users_created_total",
		Help:      "Number of user logs created.",
	})
	exercisesAddedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "api",
		Name:      "exercises_added_total",
		Help:      "Number of exercise entries appended.",
	})
	logFetchesCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fitlog",
		Subsystem: "api",
		Name:      "log_fetches_total",
		Help:      "Number of successful log retrievals.",
	})
)

func init() {
	prometheus.MustRegister(usersCreatedCounter, exercisesAddedCounter, logFetchesCounter)
}

// RecordUserCreated counts one successful user creation.
func RecordUserCreated() {
	usersCreatedCounter.Inc()
}

// RecordExerciseAdded counts one successful exercise append.
func RecordExerciseAdded() {
	exercisesAddedCounter.Inc()
}

// RecordLogFetched counts one successful log fetch.
func RecordLogFetched() {
	logFetchesCounter.Inc()
}
