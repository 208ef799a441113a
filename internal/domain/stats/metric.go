package stats

import (
	"fmt"
	"strings"
)

// Metric is one raw counter tracked per appearance.
type Metric uint8

const (
	MetricShots Metric = iota
	MetricShotsOnTarget
	MetricLongShots
	MetricHeaders
	MetricGoals
	MetricCards
	MetricFoulsCommitted
	MetricFoulsReceived

	metricCount
)

var metricNames = [metricCount]string{
	MetricShots:          "shots",
	MetricShotsOnTarget:  "shots_on_target",
	MetricLongShots:      "long_shots",
	MetricHeaders:        "headers",
	MetricGoals:          "goals",
	MetricCards:          "cards",
	MetricFoulsCommitted: "fouls_committed",
	MetricFoulsReceived:  "fouls_received",
}

func (m Metric) Valid() bool {
	return m < metricCount
}

func (m Metric) String() string {
	if !m.Valid() {
		return fmt.Sprintf("metric(%d)", uint8(m))
	}
	return metricNames[m]
}

// Metrics lists every metric in declaration order.
func Metrics() []Metric {
	out := make([]Metric, 0, metricCount)
	for m := Metric(0); m < metricCount; m++ {
		out = append(out, m)
	}
	return out
}

func ParseMetric(v string) (Metric, error) {
	key := strings.ToLower(strings.TrimSpace(v))
	for m := Metric(0); m < metricCount; m++ {
		if metricNames[m] == key {
			return m, nil
		}
	}
	switch key {
	case "target", "on_target":
		return MetricShotsOnTarget, nil
	case "long":
		return MetricLongShots, nil
	case "fouls":
		return MetricFoulsCommitted, nil
	case "fouls_rec":
		return MetricFoulsReceived, nil
	case "yellows":
		return MetricCards, nil
	}
	return 0, fmt.Errorf("%w: unsupported metric %q", ErrInvalidScope, v)
}

// Counters holds one integer per metric.
type Counters [metricCount]int

func (c Counters) Get(m Metric) int {
	if !m.Valid() {
		return 0
	}
	return c[m]
}

func (c *Counters) Add(other Counters) {
	for i := range c {
		c[i] += other[i]
	}
}

// Rates holds one per-90 value per metric.
type Rates [metricCount]float64

func (r Rates) Get(m Metric) float64 {
	if !m.Valid() {
		return 0
	}
	return r[m]
}
