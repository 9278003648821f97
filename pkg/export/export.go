// Package export writes reconciliation results as delimited files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/newtron-network/reinv/pkg/model"
	"github.com/newtron-network/reinv/pkg/util"
)

// SiteName derives the site name from a hostname by dropping its digits
// ("Lobby-AP1" -> "Lobby-AP").
func SiteName(hostname string) string {
	return util.SanitizeName(strings.TrimSpace(util.StripDigits(hostname)))
}

// SiteFileName returns "<site>.csv" for the first hostname, or "" when
// there are none.
func SiteFileName(hostnames []string) string {
	if len(hostnames) == 0 {
		return ""
	}
	site := SiteName(hostnames[0])
	if site == "" {
		site = "reinv"
	}
	return site + ".csv"
}

// WriteRecords writes one "hostname,old,hostname,new" line per record to
// path, replacing any existing file, and returns the absolute path.
func WriteRecords(path string, records []model.ReconciliationRecord) (string, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Fields()
	}
	return writeCSV(path, rows)
}

// WriteSerials writes one "port,ethernetMac,serial" line per record.
func WriteSerials(path string, records []model.SerialRecord) (string, error) {
	rows := make([][]string, len(records))
	for i, r := range records {
		rows[i] = r.Fields()
	}
	return writeCSV(path, rows)
}

// writeCSV writes rows to a temporary file next to path and renames it into
// place, so a failed write never leaves a partial file behind.
func writeCSV(path string, rows [][]string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}

	dir := filepath.Dir(abs)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(abs)+".*")
	if err != nil {
		return "", err
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(rows); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing %s: %w", abs, err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp.Name(), abs); err != nil {
		return "", err
	}

	util.WithField("path", abs).Debugf("wrote %d lines", len(rows))
	return abs, nil
}
