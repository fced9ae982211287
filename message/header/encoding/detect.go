package encoding

import (
	"unicode/utf8"

	"github.com/gogs/chardet"

	"github.com/zostay/go-email-cleanse/message/header/field"
)

// Detector is a field.Detector backed by the statistical text detector of
// github.com/gogs/chardet.
type Detector struct {
	// MinConfidence is the lowest confidence (0 to 100) accepted from the
	// detector. Guesses below it are reported as no detection.
	MinConfidence int
}

// Detect returns the best guess for the charset of b. The detector is created
// fresh for every call, so nothing is shared between calls.
//
// Input that is valid utf-8 and holds at least one multi-byte sequence is
// reported as utf-8 without consulting chardet, whose single byte n-gram
// scores beat its utf-8 score on short text such as "Müller".
func (d *Detector) Detect(b []byte) field.Detection {
	if len(b) == 0 {
		return field.Detection{}
	}

	det := field.Detection{Charset: "utf-8", Confidence: 100}
	if !utf8.Valid(b) || utf8.RuneCount(b) == len(b) {
		res, err := chardet.NewTextDetector().DetectBest(b)
		if err != nil || res == nil || res.Charset == "" {
			return field.Detection{}
		}

		det = field.Detection{
			Charset:    res.Charset,
			Confidence: res.Confidence,
		}
	}

	if det.Confidence < d.MinConfidence {
		return field.Detection{}
	}

	return det
}
