// Package hclfront loads building description files written in HCL
// into the raw record set the converter consumes. The format mirrors
// the record kinds one to one: top level blocks for constructions,
// materials and shading elements, with walls nested in their space and
// windows nested in their wall.
package hclfront

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/thermenv/internal/ctxlog"
	"github.com/vk/thermenv/internal/fsutil"
	"github.com/vk/thermenv/internal/record"
)

// Loader parses HCL building descriptions.
type Loader struct{}

// NewLoader creates a new HCL building description loader.
func NewLoader() *Loader {
	return &Loader{}
}

// blockKinds maps top level block types to record kinds.
var blockKinds = map[string]record.Kind{
	"building":       record.KindMeta,
	"polygon":        record.KindPolygon,
	"material":       record.KindMaterial,
	"glass":          record.KindGlass,
	"frame":          record.KindFrame,
	"wall_cons":      record.KindWallCons,
	"win_cons":       record.KindWinCons,
	"space":          record.KindSpace,
	"shade":          record.KindShade,
	"thermal_bridge": record.KindThermalBridge,
	"schedule_day":   record.KindScheduleDay,
	"schedule_week":  record.KindScheduleWeek,
	"schedule_year":  record.KindScheduleYear,
	"loads":          record.KindLoads,
	"sys_settings":   record.KindSysSettings,
}

func rootSchema() *hcl.BodySchema {
	var schema hcl.BodySchema
	for blockType := range blockKinds {
		schema.Blocks = append(schema.Blocks, hcl.BlockHeaderSchema{
			Type: blockType, LabelNames: []string{"name"},
		})
	}
	return &schema
}

var spaceSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "wall", LabelNames: []string{"name"}}},
}

var wallSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "window", LabelNames: []string{"name"}}},
}

// Load discovers and parses every .hcl file under the given paths and
// merges them into a single record set.
func (l *Loader) Load(ctx context.Context, paths ...string) (*record.Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	var files []string
	for _, path := range paths {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, err
		}
		files = append(files, found...)
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	set := &record.Set{}
	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		if err := l.decodeBody(hclFile.Body, set); err != nil {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, err)
		}
	}
	return set, nil
}

// ParseBytes parses a single in-memory HCL document.
func (l *Loader) ParseBytes(ctx context.Context, filename string, src []byte) (*record.Set, error) {
	ctxlog.FromContext(ctx).Debug("Parsing HCL source.", "filename", filename)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL source %s: %w", filename, diags)
	}
	set := &record.Set{}
	if err := l.decodeBody(hclFile.Body, set); err != nil {
		return nil, fmt.Errorf("failed to decode HCL source %s: %w", filename, err)
	}
	return set, nil
}

func (l *Loader) decodeBody(body hcl.Body, set *record.Set) error {
	content, diags := body.Content(rootSchema())
	if diags.HasErrors() {
		return diags
	}
	for _, block := range content.Blocks {
		kind := blockKinds[block.Type]
		if kind == record.KindSpace {
			if err := l.decodeSpace(block, set); err != nil {
				return err
			}
			continue
		}
		rec, err := decodeRecord(kind, block.Labels[0], "", block.Body)
		if err != nil {
			return err
		}
		set.Records = append(set.Records, rec)
	}
	return nil
}

func (l *Loader) decodeSpace(block *hcl.Block, set *record.Set) error {
	spaceName := block.Labels[0]
	content, rest, diags := block.Body.PartialContent(spaceSchema)
	if diags.HasErrors() {
		return diags
	}
	rec, err := decodeRecord(record.KindSpace, spaceName, "", rest)
	if err != nil {
		return err
	}
	set.Records = append(set.Records, rec)

	for _, wallBlock := range content.Blocks {
		if err := l.decodeWall(wallBlock, spaceName, set); err != nil {
			return err
		}
	}
	return nil
}

func (l *Loader) decodeWall(block *hcl.Block, spaceName string, set *record.Set) error {
	wallName := block.Labels[0]
	content, rest, diags := block.Body.PartialContent(wallSchema)
	if diags.HasErrors() {
		return diags
	}
	rec, err := decodeRecord(record.KindWall, wallName, spaceName, rest)
	if err != nil {
		return err
	}
	set.Records = append(set.Records, rec)

	for _, winBlock := range content.Blocks {
		winRec, err := decodeRecord(record.KindWindow, winBlock.Labels[0], wallName, winBlock.Body)
		if err != nil {
			return err
		}
		set.Records = append(set.Records, winRec)
	}
	return nil
}

// decodeRecord reads every attribute of a body as a string value.
// Polygon vertex lists become the V1..Vn attributes the converter
// expects; other lists collapse to semicolon-separated values.
func decodeRecord(kind record.Kind, name, parent string, body hcl.Body) (record.Record, error) {
	rec := record.Record{Kind: kind, Name: name, Parent: parent, Attrs: record.AttrMap{}}

	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return rec, diags
	}
	for attrName, attr := range attrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return rec, diags
		}
		if kind == record.KindPolygon && attrName == "vertices" {
			if err := polygonVertices(&rec, value); err != nil {
				return rec, fmt.Errorf("polygon %q: %w", name, err)
			}
			continue
		}
		s, err := valueToString(value)
		if err != nil {
			return rec, fmt.Errorf("%s %q, attribute %q: %w", kind, name, attrName, err)
		}
		rec.Attrs[attrName] = s
	}
	return rec, nil
}

func polygonVertices(rec *record.Record, value cty.Value) error {
	if !value.Type().IsTupleType() && !value.Type().IsListType() {
		return fmt.Errorf("vertices must be a list of \"x,y\" pairs")
	}
	i := 0
	for it := value.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		s, err := valueToString(elem)
		if err != nil {
			return err
		}
		i++
		rec.Attrs[fmt.Sprintf("V%d", i)] = s
	}
	return nil
}

func valueToString(value cty.Value) (string, error) {
	if value.IsNull() {
		return "", fmt.Errorf("null value")
	}
	ty := value.Type()
	switch {
	case ty == cty.String:
		return value.AsString(), nil
	case ty == cty.Number:
		return value.AsBigFloat().Text('g', -1), nil
	case ty == cty.Bool:
		if value.True() {
			return "true", nil
		}
		return "false", nil
	case ty.IsTupleType() || ty.IsListType():
		var parts []string
		for it := value.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			s, err := valueToString(elem)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, ";"), nil
	default:
		return "", fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
