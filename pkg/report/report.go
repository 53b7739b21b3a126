// Package report parses the plain-text check-in report into structured data.
//
// The report format is line oriented. Lines are recognised by their leading
// markers; anything unrecognised is ignored, so Parse never fails.
package report

import (
	"regexp"
	"strconv"
	"strings"
)

// Markers used by report producers. Keep these byte-for-byte stable.
const (
	MarkerTime    = "[TIME]"
	MarkerStats   = "[STATS]"
	MarkerBalance = "[BALANCE]"
	MarkerSuccess = "[SUCCESS]"
	MarkerFail    = "[FAIL]"
	MarkerMoney   = ":money:"

	timeLabel    = "Execution time:"
	balanceLabel = "Current balance:"
)

// Status is the check-in outcome of a single account.
type Status string

const (
	StatusSuccess Status = "success"
	StatusError   Status = "error"
	StatusUnknown Status = "unknown"
)

// AccountEntry is one account block of a report.
type AccountEntry struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Balance string `json:"balance,omitempty"` // empty when no :money: line followed
}

// Report is the parsed form of a status text.
//
// Total, SuccessCount and FailCount come from the summary lines only and are
// not reconciled with len(Accounts).
type Report struct {
	Timestamp    string         `json:"timestamp"`
	Accounts     []AccountEntry `json:"accounts"`
	Total        int            `json:"total"`
	SuccessCount int            `json:"success_count"`
	FailCount    int            `json:"fail_count"`
}

// statsKeywords mark a line as a summary line, even when it also starts with
// [SUCCESS] or [FAIL].
var statsKeywords = []string{"Success:", "Failed:", "All accounts", "Some accounts"}

// batchPhrases are whole-run outcome lines that must not open an account.
var batchPhrases = []string{"All accounts", "Some accounts", "check-in successful", "check-in failed"}

var (
	successRatio = regexp.MustCompile(`Success:\s*(\d+)\s*/\s*(\d+)`)
	failedRatio  = regexp.MustCompile(`Failed:\s*(\d+)\s*/\s*(\d+)`)
)

// Parse turns a report text into a Report. Empty or unrecognised input yields
// an empty report.
func Parse(text string) *Report {
	r := &Report{Accounts: []AccountEntry{}}
	current := -1 // index into r.Accounts of the most recently opened entry

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, MarkerTime) {
			ts := strings.TrimSpace(strings.TrimPrefix(line, MarkerTime))
			r.Timestamp = strings.TrimSpace(strings.TrimPrefix(ts, timeLabel))
			continue
		}
		if strings.HasPrefix(line, MarkerStats) {
			continue
		}

		if containsAny(line, statsKeywords) {
			r.applyStats(line)
			continue
		}

		switch {
		case strings.HasPrefix(line, MarkerBalance):
			current = r.open(strings.TrimPrefix(line, MarkerBalance), StatusSuccess)
		case strings.HasPrefix(line, MarkerSuccess):
			if strings.Contains(line, "Account") || !containsAny(line, batchPhrases) {
				current = r.open(strings.TrimPrefix(line, MarkerSuccess), StatusSuccess)
			}
		case strings.HasPrefix(line, MarkerFail):
			current = r.open(strings.TrimPrefix(line, MarkerFail), StatusError)
		case strings.HasPrefix(line, MarkerMoney):
			if current < 0 {
				continue
			}
			balance := strings.TrimPrefix(line, MarkerMoney)
			balance = strings.ReplaceAll(balance, balanceLabel, "")
			r.Accounts[current].Balance = strings.TrimSpace(balance)
		}
	}
	return r
}

func (r *Report) open(name string, status Status) int {
	r.Accounts = append(r.Accounts, AccountEntry{
		Name:   strings.TrimSpace(name),
		Status: status,
	})
	return len(r.Accounts) - 1
}

// applyStats reads "Success: a/b" and "Failed: a/b" fragments. Fragments that
// do not parse leave the counters untouched.
func (r *Report) applyStats(line string) {
	if m := successRatio.FindStringSubmatch(line); m != nil {
		ok, errOK := strconv.Atoi(m[1])
		total, errTotal := strconv.Atoi(m[2])
		if errOK == nil && errTotal == nil {
			r.SuccessCount = ok
			r.Total = total
		}
	}
	if m := failedRatio.FindStringSubmatch(line); m != nil {
		if failed, err := strconv.Atoi(m[1]); err == nil {
			r.FailCount = failed
		}
	}
}

// Empty reports whether no account entries were recognised.
func (r *Report) Empty() bool {
	return len(r.Accounts) == 0
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
