package tle

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// Checksum returns the modulo-10 checksum of the first 68 columns of a TLE
// line: digits count their value, '-' counts one, everything else zero.
func Checksum(line string) int {
	if len(line) > 68 {
		line = line[:68]
	}
	sum := 0
	for _, c := range line {
		switch {
		case c >= '0' && c <= '9':
			sum += int(c - '0')
		case c == '-':
			sum++
		}
	}
	return sum % 10
}

// validChecksum reports whether column 69 matches Checksum(line).
func validChecksum(line string) bool {
	if len(line) != 69 {
		return false
	}
	want := int(line[68] - '0')
	return want >= 0 && want <= 9 && Checksum(line) == want
}

// Parse reads 3-line NORAD TLE format (name line followed by lines 1 and 2).
// Malformed entries and entries failing the checksum are skipped with a
// warning log.
func Parse(r io.Reader, logger *slog.Logger) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r\n ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading TLE data: %w", err)
	}

	var entries []Entry
	for i := 0; i+2 < len(lines); {
		name := strings.TrimSpace(lines[i])
		line1 := lines[i+1]
		line2 := lines[i+2]

		if !strings.HasPrefix(line1, "1 ") || !strings.HasPrefix(line2, "2 ") {
			// Resynchronize on the next line.
			logger.Warn("skipping malformed TLE entry", "line_index", i, "name", name)
			i++
			continue
		}
		i += 3

		if !validChecksum(line1) || !validChecksum(line2) {
			logger.Warn("skipping TLE entry with bad checksum", "name", name)
			continue
		}

		noradStr := strings.TrimSpace(line1[2:7])
		noradID, err := strconv.Atoi(noradStr)
		if err != nil {
			logger.Warn("skipping TLE entry with invalid NORAD ID", "norad_str", noradStr, "name", name)
			continue
		}

		epochStr := strings.TrimSpace(line1[18:32])
		epoch, err := parseEpoch(epochStr)
		if err != nil {
			logger.Warn("skipping TLE entry with invalid epoch", "epoch_str", epochStr, "name", name, "error", err)
			continue
		}

		entries = append(entries, Entry{
			NORADID: noradID,
			Name:    name,
			Epoch:   epoch,
			Line1:   line1,
			Line2:   line2,
		})
	}

	return entries, nil
}

// parseEpoch converts YYDDD.DDDDDDDD to a UTC time.
// Years 57-99 are 19xx, 00-56 are 20xx.
func parseEpoch(s string) (time.Time, error) {
	if len(s) < 5 {
		return time.Time{}, fmt.Errorf("epoch string too short: %q", s)
	}

	year, err := strconv.Atoi(s[:2])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch year %q: %w", s[:2], err)
	}
	if year >= 57 {
		year += 1900
	} else {
		year += 2000
	}

	day, err := strconv.ParseFloat(s[2:], 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch day %q: %w", s[2:], err)
	}

	// day 1.0 is Jan 1 00:00.
	start := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
	return start.Add(time.Duration((day - 1) * float64(24*time.Hour))), nil
}
