package codec

import (
	"github.com/taskrevolution/ttr/internal/entity"
)

// companySpec is the on-disk `spec:` section for a Company manifest.
// Field order is emission order for yaml.v3, which gives deterministic
// output without a custom encoder.
type companySpec struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Contact     string `yaml:"contact,omitempty"`
	Industry    string `yaml:"industry,omitempty"`
	Size        string `yaml:"size"`
	Status      string `yaml:"status"`
}

// EncodeCompany renders c as a deterministic YAML manifest.
func EncodeCompany(c *entity.Company) ([]byte, error) {
	env := envelope{
		APIVersion: APIVersion,
		Kind:       string(KindCompany),
		Metadata: metadata{
			ID:        c.ID,
			Code:      c.Code,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
			CreatedBy: c.CreatedBy,
		},
		Spec: companySpec{
			Name:        c.Name,
			Description: c.Description,
			Contact:     c.Contact,
			Industry:    c.Industry,
			Size:        string(c.Size),
			Status:      string(c.Status),
		},
	}
	return marshalEnvelope(env)
}

// DecodeCompany parses data as a Company manifest.
func DecodeCompany(path string, data []byte) (*entity.Company, []SchemaWarning, error) {
	r, warnings, err := decodeRaw(path, data, KindCompany)
	if err != nil {
		return nil, nil, err
	}

	var spec companySpec
	specWarnings, err := remarshal(r.Spec, &spec)
	if err != nil {
		return nil, nil, &SchemaViolationError{Field: "spec", Reason: err.Error()}
	}
	warnings = append(warnings, specWarnings...)
	if spec.Name == "" {
		return nil, nil, &SchemaViolationError{Field: "spec.name", Reason: "must not be empty"}
	}

	c := &entity.Company{
		Audit: entity.Audit{
			CreatedAt: r.Metadata.CreatedAt,
			UpdatedAt: r.Metadata.UpdatedAt,
			CreatedBy: r.Metadata.CreatedBy,
		},
		ID:          r.Metadata.ID,
		Code:        r.Metadata.Code,
		Name:        spec.Name,
		Description: spec.Description,
		Contact:     spec.Contact,
		Industry:    spec.Industry,
		Size:        entity.CompanySize(orDefault(spec.Size, string(entity.SizeSmall))),
		Status:      entity.CompanyStatus(orDefault(spec.Status, string(entity.CompanyActive))),
	}
	return c, warnings, nil
}

