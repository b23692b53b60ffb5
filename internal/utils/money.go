package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatRupees renders an integer amount with Indian digit grouping,
// e.g. 125000 -> "₹1,25,000".
func FormatRupees(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return fmt.Sprintf("%s₹%s", sign, groupIndian(amount))
}

// ParseRupees parses "₹1,25,000", "Rs 1000" or "1000".
func ParseRupees(s string) (int64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	for _, p := range []string{"₹", "rs.", "rs", "inr"} {
		s = strings.TrimPrefix(s, p)
	}
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	if s == "" {
		return 0, fmt.Errorf("invalid rupee amount")
	}
	return strconv.ParseInt(s, 10, 64)
}

// Percent rounds amount*pct half away from zero.
func Percent(amount int64, pct float64) int64 {
	return int64(math.Round(float64(amount) * pct))
}

func groupIndian(n int64) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 {
		return str
	}
	head, tail := str[:len(str)-3], str[len(str)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
