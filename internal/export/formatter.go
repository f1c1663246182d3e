// Package export encodes profile lists for download and hands them to a Saver.
package export

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/argoview/backend-go/internal/models"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatNetCDF Format = "netcdf"
	FormatJSON   Format = "json"
)

const (
	ContentTypeCSV    = "text/csv"
	ContentTypeBinary = "application/octet-stream"
	ContentTypeJSON   = "application/json"
)

// CSVHeaders is the fixed column order of CSV exports
var CSVHeaders = []string{"depth", "temperature", "salinity", "oxygen", "chlorophyll", "floatId", "timestamp"}

// Payload is an encoded export ready to be saved
type Payload struct {
	Data        []byte
	Filename    string
	ContentType string
}

// Binary reports whether Data should be treated as opaque bytes by transports
func (p *Payload) Binary() bool {
	return p.ContentType == ContentTypeBinary
}

// Export encodes profiles in the requested format. Unknown formats fall back to JSON.
func Export(profiles []models.Profile, format Format, now time.Time) (*Payload, error) {
	var (
		data        []byte
		err         error
		ext         string
		contentType string
	)

	switch format {
	case FormatCSV:
		data = []byte(ExportCSV(profiles))
		ext, contentType = "csv", ContentTypeCSV
	case FormatNetCDF:
		data, err = ExportNetCDF(profiles)
		ext, contentType = "nc", ContentTypeBinary
	default:
		data, err = ExportJSON(profiles)
		ext, contentType = "json", ContentTypeJSON
	}
	if err != nil {
		return nil, fmt.Errorf("encoding %s export: %w", format, err)
	}

	return &Payload{
		Data:        data,
		Filename:    Filename(now, ext),
		ContentType: contentType,
	}, nil
}

// Filename returns argo-data-<UTC date>.<ext>
func Filename(now time.Time, ext string) string {
	return fmt.Sprintf("argo-data-%s.%s", now.UTC().Format(models.DateLayout), ext)
}

// ExportCSV renders one header row and one row per profile. Missing readings
// are left empty. Values are not quoted or escaped.
func ExportCSV(profiles []models.Profile) string {
	rows := make([]string, 0, len(profiles)+1)
	rows = append(rows, strings.Join(CSVHeaders, ","))

	for _, p := range profiles {
		fields := []string{
			formatNumber(p.Depth),
			formatReading(p.Temperature),
			formatReading(p.Salinity),
			formatReading(p.Oxygen),
			formatReading(p.Chlorophyll),
			p.FloatID,
			p.Timestamp,
		}
		rows = append(rows, strings.Join(fields, ","))
	}

	return strings.Join(rows, "\n")
}

// ExportNetCDF is a placeholder until a NetCDF encoder exists: the payload is
// the JSON encoding of the profiles, served as binary.
func ExportNetCDF(profiles []models.Profile) ([]byte, error) {
	return ExportJSON(profiles)
}

// ExportJSON renders the profiles as a JSON array indented by two spaces
func ExportJSON(profiles []models.Profile) ([]byte, error) {
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return json.MarshalIndent(profiles, "", "  ")
}

func formatReading(v *float64) string {
	if v == nil {
		return ""
	}
	return formatNumber(*v)
}

// formatNumber never uses exponent notation: 1e-7 renders as 0.0000001 and
// negative zero as -0.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
