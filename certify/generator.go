package certify

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"time"
)

var (
	whitespaceRuns = regexp.MustCompile(`\s+`)
	unsafeIDChars  = regexp.MustCompile(`[^a-zA-Z0-9_-]`)
)

// MakeCertID derives a certificate identifier from a course name:
// <sanitized course>_<last 8 digits of epoch millis>_<4-char base36>.
// Uniqueness is probabilistic; the store's unique index is the actual
// correctness backstop.
func MakeCertID(courseName string) string {
	safeCourse := whitespaceRuns.ReplaceAllString(courseName, "_")
	safeCourse = unsafeIDChars.ReplaceAllString(safeCourse, "")
	if safeCourse == "" {
		safeCourse = "Course"
	}

	timePart := strconv.FormatInt(time.Now().UnixMilli(), 10)
	timePart = timePart[len(timePart)-8:]

	return fmt.Sprintf("%s_%s_%s", safeCourse, timePart, randBase36(4))
}

const base36Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// randBase36 returns n random lowercase base36 characters.
func randBase36(n int) string {
	max := big.NewInt(int64(len(base36Alphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand failing means the process is in serious
			// trouble; a fixed character keeps the id well-formed.
			b[i] = '0'
			continue
		}
		b[i] = base36Alphabet[idx.Int64()]
	}
	return string(b)
}
