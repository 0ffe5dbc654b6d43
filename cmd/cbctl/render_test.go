package main

import (
	"bytes"
	"testing"

	"go-careerbridge/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "  Just text.  ", "Just text."},
		{"paragraphs", "<p>First  paragraph.</p><p>Second<br>line.</p>", "First paragraph.\nSecond\nline."},
		{"list", "<h3>Stack</h3><ul><li>Go</li><li>Redis</li></ul>", "Stack\n- Go\n- Redis"},
		{"script dropped", "<p>Safe</p><script>alert(1)</script>", "Safe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, plainText(tt.in))
		})
	}
}

func TestLocationAndSalary(t *testing.T) {
	assert.Equal(t, "Austin, TX, USA", location(&domain.Location{City: "Austin", State: "TX", Country: "USA"}))
	assert.Equal(t, "(remote)", location(&domain.Location{Remote: true}))
	assert.Equal(t, "", location(nil))

	assert.Equal(t, "USD 90000-130000", salary(&domain.Salary{Min: 90000, Max: 130000, Currency: "USD"}))
	assert.Equal(t, "", salary(&domain.Salary{}))
}

func TestPrintStatusCountsListsEveryStatus(t *testing.T) {
	var buf bytes.Buffer
	printStatusCounts(&buf, 1, map[string]int{domain.AppStatusApplied: 1})
	for _, s := range []string{"applied", "shortlisted", "reviewing", "accepted", "rejected", "withdrawn"} {
		assert.Contains(t, buf.String(), s)
	}
}
