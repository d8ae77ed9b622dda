package justification

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gruamaster/ponto-backend-go/internal/domain/justification"
)

var weekdayNames = [...]string{"domingo", "segunda", "terca", "quarta", "quinta", "sexta", "sabado"}

func CountByStatus(js []justification.Justification) map[string]int {
	out := make(map[string]int, len(justification.AllStatuses))
	for _, st := range justification.AllStatuses {
		out[string(st)] = 0
	}
	for _, j := range js {
		out[string(j.Status)]++
	}
	return out
}

func CountByType(js []justification.Justification) map[string]int {
	out := make(map[string]int, len(justification.AllTypes))
	for _, t := range justification.AllTypes {
		out[string(t)] = 0
	}
	for _, j := range js {
		out[string(j.Type)]++
	}
	return out
}

// CountByWeekday keys counts by Portuguese weekday name (domingo..sabado).
func CountByWeekday(js []justification.Justification) map[string]int {
	out := make(map[string]int, len(weekdayNames))
	for _, name := range weekdayNames {
		out[name] = 0
	}
	for _, j := range js {
		out[weekdayNames[j.Date.Weekday()]]++
	}
	return out
}

// CountByISOWeek keys counts by ISO week, formatted as 2026-W42.
func CountByISOWeek(js []justification.Justification) map[string]int {
	out := make(map[string]int)
	for _, j := range js {
		out[isoWeek(j.Date)]++
	}
	return out
}

func isoWeek(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// PerEmployee totals justifications per employee, highest first.
func PerEmployee(js []justification.Justification) []justification.EmployeeCount {
	index := make(map[string]int)
	var out []justification.EmployeeCount
	for _, j := range js {
		i, ok := index[j.EmployeeID]
		if !ok {
			i = len(out)
			index[j.EmployeeID] = i
			out = append(out, justification.EmployeeCount{EmployeeID: j.EmployeeID, EmployeeName: j.EmployeeName})
		}
		out[i].Total++
	}
	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Total != out[b].Total {
			return out[a].Total > out[b].Total
		}
		return out[a].EmployeeID < out[b].EmployeeID
	})
	return out
}

// TopEmployee is the employee with the most justifications, or nil for an empty set.
func TopEmployee(js []justification.Justification) *justification.EmployeeCount {
	per := PerEmployee(js)
	if len(per) == 0 {
		return nil
	}
	top := per[0]
	return &top
}

// ComputeTrend compares the current period's total with the previous one.
// Growth from zero counts as 100%.
func ComputeTrend(current, previous int) justification.Trend {
	t := justification.Trend{Current: current, Previous: previous}
	switch {
	case previous == 0 && current > 0:
		t.PercentChange = 100
	case previous > 0:
		t.PercentChange = round2(float64(current-previous) / float64(previous) * 100)
	}
	switch {
	case current > previous:
		t.Direction = "aumento"
	case current < previous:
		t.Direction = "reducao"
	default:
		t.Direction = "estavel"
	}
	return t
}

// MeanApprovalLatency averages ApprovedAt - CreatedAt over approved justifications.
func MeanApprovalLatency(js []justification.Justification) justification.Latency {
	var total time.Duration
	var n int
	for _, j := range js {
		if j.Status != justification.StatusApproved || j.ApprovedAt == nil {
			continue
		}
		total += j.ApprovedAt.Sub(j.CreatedAt)
		n++
	}
	if n == 0 {
		return justification.Latency{}
	}
	hours := total.Hours() / float64(n)
	return justification.Latency{
		Samples: n,
		Hours:   round2(hours),
		Days:    round2(hours / 24),
	}
}

// BusinessDays counts Monday to Friday dates in [start, end].
func BusinessDays(start, end time.Time) int {
	n := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return n
}

// ApprovalRate is the percentage of approved justifications.
func ApprovalRate(js []justification.Justification) float64 {
	if len(js) == 0 {
		return 0
	}
	approved := 0
	for _, j := range js {
		if j.Status == justification.StatusApproved {
			approved++
		}
	}
	return round2(float64(approved) / float64(len(js)) * 100)
}

// GroupBy counts justifications by one of funcionario, tipo, status, dia or semana.
// Groups are ordered by key.
func GroupBy(js []justification.Justification, key string) []justification.GroupCount {
	counts := make(map[string]int)
	for _, j := range js {
		var k string
		switch key {
		case "tipo":
			k = string(j.Type)
		case "status":
			k = string(j.Status)
		case "dia":
			k = j.Date.Format("2006-01-02")
		case "semana":
			k = isoWeek(j.Date)
		default:
			k = j.EmployeeID
			if j.EmployeeName != nil {
				k = *j.EmployeeName
			}
		}
		counts[k]++
	}

	out := make([]justification.GroupCount, 0, len(counts))
	for k, v := range counts {
		out = append(out, justification.GroupCount{Key: k, Total: v})
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Key < out[b].Key })
	return out
}

func uniqueEmployees(js []justification.Justification) int {
	seen := make(map[string]struct{})
	for _, j := range js {
		seen[j.EmployeeID] = struct{}{}
	}
	return len(seen)
}

func dailyMean(total, businessDays int) float64 {
	if businessDays == 0 {
		return 0
	}
	return round2(float64(total) / float64(businessDays))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
