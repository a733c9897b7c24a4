package migratekit

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/evsyukovmv/migratekit/internal/models"
)

type TemplateKind string

const (
	TemplateBasic  TemplateKind = "basic"
	TemplateSchema TemplateKind = "schema"
	TemplateData   TemplateKind = "data"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// CreateFile materializes a new migration source file in the configured
// migrations directory. The file name is <version>_<slug>.go; the version
// must be digits only and at least three digits wide so file names stay
// lexically sortable in application order. An existing file of the same
// name is never overwritten.
func (m *MigrationManager) CreateFile(version, description string, kind TemplateKind) (string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, err := models.ParseVersion(version); err != nil {
		return "", err
	}
	if len(version) < 3 {
		return "", fmt.Errorf("version %q must be zero-padded to at least 3 digits", version)
	}
	if description == "" {
		return "", fmt.Errorf("migration description must not be empty")
	}

	tmpl, ok := migrationTemplates[kind]
	if !ok {
		return "", fmt.Errorf("unknown migration template %q", kind)
	}

	name := version + "_" + slugify(description) + ".go"
	path := filepath.Join(m.migrationsDir, name)

	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("migration file %s already exists", path)
	}

	var buf bytes.Buffer
	err := tmpl.Execute(&buf, templateData{
		Package:     packageName(m.migrationsDir),
		Version:     version,
		Description: description,
	})
	if err != nil {
		return "", fmt.Errorf("rendering migration template: %w", err)
	}

	if err = os.MkdirAll(m.migrationsDir, 0o755); err != nil {
		return "", err
	}
	if err = os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", err
	}

	m.logger.Info(fmt.Sprintf("created %s migration %s", kind, path))
	return path, nil
}

func slugify(description string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(description), "_")
	return strings.Trim(slug, "_")
}

func packageName(dir string) string {
	name := slugPattern.ReplaceAllString(strings.ToLower(filepath.Base(dir)), "")
	if name == "" || name == "." {
		return "migrations"
	}
	return name
}

type templateData struct {
	Package     string
	Version     string
	Description string
}

var migrationTemplates = map[TemplateKind]*template.Template{
	TemplateBasic:  template.Must(template.New("basic").Parse(basicTemplate)),
	TemplateSchema: template.Must(template.New("schema").Parse(schemaTemplate)),
	TemplateData:   template.Must(template.New("data").Parse(dataTemplate)),
}

const basicTemplate = `package {{.Package}}

import (
	"errors"

	"github.com/evsyukovmv/migratekit"
	"gorm.io/gorm"
)

func init() {
	migratekit.Register(migration{{.Version}}{
		Definition: migratekit.Definition{
			MigrationVersion:     "{{.Version}}",
			MigrationDescription: "{{.Description}}",
		},
	})
}

type migration{{.Version}} struct {
	migratekit.Definition
}

func (m migration{{.Version}}) Up(db *gorm.DB) error {
	return errors.New("migration {{.Version}} up not implemented")
}

func (m migration{{.Version}}) Down(db *gorm.DB) error {
	return errors.New("migration {{.Version}} down not implemented")
}
`

const schemaTemplate = `package {{.Package}}

import (
	"errors"

	"github.com/evsyukovmv/migratekit"
	"gorm.io/gorm"
)

func init() {
	migratekit.Register(migration{{.Version}}{
		Definition: migratekit.Definition{
			MigrationVersion:     "{{.Version}}",
			MigrationDescription: "{{.Description}}",
		},
	})
}

type migration{{.Version}} struct {
	migratekit.Definition
}

func (m migration{{.Version}}) Up(db *gorm.DB) error {
	changes := migratekit.NewSchemaChanges()

	// example:
	// if err := db.Exec(changes.CreateTable("examples",
	// 	"id BIGSERIAL PRIMARY KEY",
	// 	"name TEXT NOT NULL",
	// )).Error; err != nil {
	// 	return err
	// }

	_ = changes
	return errors.New("migration {{.Version}} up not implemented")
}

func (m migration{{.Version}}) Down(db *gorm.DB) error {
	return errors.New("migration {{.Version}} down not implemented")
}
`

const dataTemplate = `package {{.Package}}

import (
	"errors"

	"github.com/evsyukovmv/migratekit"
	"gorm.io/gorm"
)

func init() {
	migratekit.Register(migration{{.Version}}{
		Definition: migratekit.Definition{
			MigrationVersion:     "{{.Version}}",
			MigrationDescription: "{{.Description}}",
		},
	})
}

type migration{{.Version}} struct {
	migratekit.Definition
}

func (m migration{{.Version}}) Up(db *gorm.DB) error {
	changes := migratekit.NewDataChanges()

	// example:
	// sql, params := changes.Insert("examples", []string{"name"}, []interface{}{"first"})
	// if err := db.Exec(sql, params...).Error; err != nil {
	// 	return err
	// }

	_ = changes
	return errors.New("migration {{.Version}} up not implemented")
}

// Down is advisory for data migrations: previous values are not captured,
// so treat this migration as forward-only unless you add your own undo.
func (m migration{{.Version}}) Down(db *gorm.DB) error {
	return errors.New("migration {{.Version}} down not implemented")
}
`
