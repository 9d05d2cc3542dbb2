// Package jsonload implements the JSON ingestion path (spec.md §4.4): an
// alternative to HBK ingestion that reads a directory of pre-exported JSON
// arrays — types.json, methods.json, properties.json, constructors.json —
// and populates a Catalog with the same Definition shapes L1-L3 produce.
package jsonload

import (
	"encoding/json"
	"os"
	"path/filepath"

	"catalogd/internal/catalog"
	"catalogd/internal/catalogerr"
)

type typeRecord struct {
	NameRU                string `json:"name_ru"`
	NameEN                string `json:"name_en"`
	Description           string `json:"description"`
	CollectionElementType string `json:"collection_element_type"`
}

type parameterRecord struct {
	Name         string `json:"name"`
	TypeName     string `json:"type_name"`
	Description  string `json:"description"`
	Optional     bool   `json:"optional"`
	DefaultValue string `json:"default_value"`
}

type signatureRecord struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Parameters  []parameterRecord `json:"parameters"`
}

type methodRecord struct {
	NameRU        string            `json:"name_ru"`
	NameEN        string            `json:"name_en"`
	Description   string            `json:"description"`
	OwnerTypeName string            `json:"owner_type_name"`
	ReturnType    string            `json:"return_type"`
	Signatures    []signatureRecord `json:"signatures"`
}

type propertyRecord struct {
	NameRU        string `json:"name_ru"`
	NameEN        string `json:"name_en"`
	Description   string `json:"description"`
	OwnerTypeName string `json:"owner_type_name"`
	TypeName      string `json:"type_name"`
	ReadOnly      bool   `json:"read_only"`
}

type constructorRecord struct {
	NameRU        string            `json:"name_ru"`
	NameEN        string            `json:"name_en"`
	Description   string            `json:"description"`
	OwnerTypeName string            `json:"owner_type_name"`
	Name          string            `json:"name"`
	Parameters    []parameterRecord `json:"parameters"`
}

// Load reads types.json, methods.json, properties.json and
// constructors.json from dir and registers every record into cat. A
// missing file is tolerated (not every export carries all four); a
// present-but-malformed file is a fatal CodeUnsupportedFormat.
func Load(dir string, cat *catalog.Catalog) error {
	var types []typeRecord
	if err := readJSONArray(dir, "types.json", &types); err != nil {
		return err
	}
	for _, t := range types {
		cat.AddType(&catalog.PlatformTypeDefinition{
			Header: catalog.NewHeader(t.NameRU, t.NameEN, t.Description, catalog.KindType, ""),
			CollectionElementType: t.CollectionElementType,
		})
	}

	var methods []methodRecord
	if err := readJSONArray(dir, "methods.json", &methods); err != nil {
		return err
	}
	for _, m := range methods {
		cat.AddMethod(&catalog.MethodDefinition{
			Header:     catalog.NewHeader(m.NameRU, m.NameEN, m.Description, catalog.KindMethod, m.OwnerTypeName),
			Signatures: toSignatures(m.Signatures),
			ReturnType: m.ReturnType,
		})
	}

	var properties []propertyRecord
	if err := readJSONArray(dir, "properties.json", &properties); err != nil {
		return err
	}
	for _, p := range properties {
		cat.AddProperty(&catalog.PropertyDefinition{
			Header:   catalog.NewHeader(p.NameRU, p.NameEN, p.Description, catalog.KindProperty, p.OwnerTypeName),
			TypeName: p.TypeName,
			ReadOnly: p.ReadOnly,
		})
	}

	var constructors []constructorRecord
	if err := readJSONArray(dir, "constructors.json", &constructors); err != nil {
		return err
	}
	for _, c := range constructors {
		cat.AddConstructor(&catalog.ConstructorSignature{
			Header:     catalog.NewHeader(c.NameRU, c.NameEN, c.Description, catalog.KindConstructor, c.OwnerTypeName),
			Name:       c.Name,
			Syntax:     c.Description,
			Parameters: toParameters(c.Parameters),
		})
	}

	return nil
}

func readJSONArray(dir, name string, out interface{}) error {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return catalogerr.Wrap(err, catalogerr.CodeUnsupportedFormat, "reading "+name)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return catalogerr.Wrap(err, catalogerr.CodeUnsupportedFormat, "decoding "+name)
	}
	return nil
}

func toParameters(records []parameterRecord) []catalog.ParameterDefinition {
	if len(records) == 0 {
		return nil
	}
	out := make([]catalog.ParameterDefinition, len(records))
	for i, r := range records {
		out[i] = catalog.ParameterDefinition{
			Name:         r.Name,
			TypeName:     r.TypeName,
			Description:  r.Description,
			Optional:     r.Optional,
			DefaultValue: r.DefaultValue,
		}
	}
	return out
}

func toSignatures(records []signatureRecord) []catalog.Signature {
	if len(records) == 0 {
		return nil
	}
	out := make([]catalog.Signature, len(records))
	for i, r := range records {
		out[i] = catalog.Signature{
			Name:        r.Name,
			Description: r.Description,
			Parameters:  toParameters(r.Parameters),
		}
	}
	return out
}
