package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/crm-inmobiliario/internal/domain/entity"
)

// Columnas del CSV de ubicaciones: barrio;ciudad;provincia[;municipio].
const (
	colNeighborhood = iota
	colCity
	colProvince
	colMunicipality
)

// readLocations lee el catálogo separado por ';'. Los ficheros del INE y de
// la mayoría de ayuntamientos vienen en ISO-8859-1.
func readLocations(r io.Reader, latin1 bool) ([]entity.Location, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []entity.Location
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) < colProvince+1 {
			return nil, fmt.Errorf("línea %d: se esperan al menos 3 columnas, hay %d", line, len(rec))
		}
		loc := entity.Location{
			Neighborhood: strings.TrimSpace(rec[colNeighborhood]),
			City:         strings.TrimSpace(rec[colCity]),
			Province:     strings.TrimSpace(rec[colProvince]),
		}
		if len(rec) > colMunicipality {
			loc.Municipality = strings.TrimSpace(rec[colMunicipality])
		}
		if loc.City == "" {
			continue
		}
		out = append(out, loc)
	}
	return out, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(rec[0])) {
	case "barrio", "neighborhood":
		return true
	}
	return false
}
