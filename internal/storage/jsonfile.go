package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/jgoulah/ecomonitor/internal/energy"
	"github.com/jgoulah/ecomonitor/pkg/models"
)

var (
	// ErrNotFound is returned by Load when the data file does not exist
	ErrNotFound = errors.New("data file not found")
	// ErrMalformed is returned by Load when the file is not a store document
	ErrMalformed = errors.New("malformed data file")
)

// DefaultDataPath returns the default data file path (local directory)
func DefaultDataPath() string {
	return "energy_data.json"
}

// Save writes the whole store to path, replacing any existing content
func Save(path string, store *energy.Store) error {
	data, err := Encode(store)
	if err != nil {
		return fmt.Errorf("encoding store: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating data directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing data file: %w", err)
	}

	return nil
}

// Load reads path into a new store
func Load(path string) (*energy.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading data file: %w", err)
	}

	store, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	return store, nil
}

// LoadOrEmpty is Load, except a missing file yields an empty store
func LoadOrEmpty(path string) (*energy.Store, error) {
	store, err := Load(path)
	if errors.Is(err, ErrNotFound) {
		return energy.NewStore(), nil
	}
	return store, err
}

// Encode renders the store as an indented JSON object with appliances in store order
func Encode(store *energy.Store) ([]byte, error) {
	var buf bytes.Buffer
	enc := jsontext.NewEncoder(&buf, jsontext.WithIndent("    "), jsontext.SpaceAfterColon(true))

	if err := enc.WriteToken(jsontext.BeginObject); err != nil {
		return nil, err
	}
	for _, appliance := range store.Appliances() {
		if err := enc.WriteToken(jsontext.String(appliance)); err != nil {
			return nil, err
		}
		readings := store.Readings(appliance)
		if readings == nil {
			readings = []models.Reading{}
		}
		if err := json.MarshalEncode(enc, readings); err != nil {
			return nil, fmt.Errorf("encoding %s readings: %w", appliance, err)
		}
	}
	if err := enc.WriteToken(jsontext.EndObject); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode parses a JSON store document, keeping the file's appliance order
func Decode(data []byte) (*energy.Store, error) {
	dec := jsontext.NewDecoder(bytes.NewReader(data))

	tok, err := dec.ReadToken()
	if err != nil {
		return nil, err
	}
	if tok.Kind() != '{' {
		return nil, fmt.Errorf("expected object, got %v", tok.Kind())
	}

	store := energy.NewStore()
	for dec.PeekKind() != '}' {
		name, err := dec.ReadToken()
		if err != nil {
			return nil, err
		}
		appliance := name.String()

		var readings []models.Reading
		if err := json.UnmarshalDecode(dec, &readings); err != nil {
			return nil, fmt.Errorf("decoding %s readings: %w", appliance, err)
		}
		for i, r := range readings {
			if err := validate(r); err != nil {
				return nil, fmt.Errorf("%s reading %d: %w", appliance, i, err)
			}
		}
		store.Set(appliance, readings)
	}

	if _, err := dec.ReadToken(); err != nil {
		return nil, err
	}
	if _, err := dec.ReadToken(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after store object")
	}

	return store, nil
}

// validate checks only the shape of a decoded reading
func validate(r models.Reading) error {
	if r.Timestamp == "" {
		return errors.New("missing timestamp")
	}
	if r.Usage < 0 {
		return fmt.Errorf("negative usage %v", r.Usage)
	}
	return nil
}
