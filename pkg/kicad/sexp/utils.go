package sexp

import (
	"fmt"
	"strconv"

	"github.com/OpenTraceLab/OpenTraceLaser/pkg/geometry"
	"github.com/OpenTraceLab/OpenTraceLaser/pkg/kicad/sexp/kicadsexp"
)

// FindNode returns the first child list whose keyword is key.
// Example: FindNode(sexp, "at") finds (at 100 50) in a list
func FindNode(s kicadsexp.Sexp, key string) (*kicadsexp.List, bool) {
	list, ok := s.(*kicadsexp.List)
	if !ok {
		return nil, false
	}
	for _, item := range list.Items() {
		if sub, ok := item.(*kicadsexp.List); ok && sub.Name() == key {
			return sub, true
		}
	}
	return nil, false
}

// FindAllNodes returns every child list whose keyword is key, in file order.
func FindAllNodes(s kicadsexp.Sexp, key string) []*kicadsexp.List {
	list, ok := s.(*kicadsexp.List)
	if !ok {
		return nil
	}
	var results []*kicadsexp.List
	for _, item := range list.Items() {
		if sub, ok := item.(*kicadsexp.List); ok && sub.Name() == key {
			results = append(results, sub)
		}
	}
	return results
}

// GetListItems returns all items in a list (excluding the first symbol/key)
// Example: GetListItems((layers "F.Cu" "B.Cu")) returns ["F.Cu", "B.Cu"]
func GetListItems(s kicadsexp.Sexp) []kicadsexp.Sexp {
	list, ok := s.(*kicadsexp.List)
	if !ok || list.Len() <= 1 {
		return nil
	}
	return list.Items()[1:]
}

// GetSymbols returns the atoms following the keyword, skipping sub-lists.
func GetSymbols(s kicadsexp.Sexp) []string {
	var out []string
	for _, item := range GetListItems(s) {
		if sym, ok := item.(kicadsexp.Symbol); ok {
			out = append(out, string(sym))
		}
	}
	return out
}

// GetString extracts the atom at index. Index 0 is the keyword.
func GetString(s kicadsexp.Sexp, index int) (string, error) {
	list, ok := s.(*kicadsexp.List)
	if !ok {
		return "", fmt.Errorf("expected list, got leaf")
	}
	item := list.Get(index)
	if item == nil {
		return "", fmt.Errorf("%s: index %d out of bounds (length %d)", where(list), index, list.Len())
	}
	sym, ok := item.(kicadsexp.Symbol)
	if !ok {
		return "", fmt.Errorf("%s: expected symbol at index %d, got list", where(list), index)
	}
	return string(sym), nil
}

// GetFloat extracts a float64 value at the given index
func GetFloat(s kicadsexp.Sexp, index int) (float64, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse float %q: %w", str, err)
	}
	return val, nil
}

// GetInt extracts an int value at the given index
func GetInt(s kicadsexp.Sexp, index int) (int, error) {
	str, err := GetString(s, index)
	if err != nil {
		return 0, err
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("failed to parse int %q: %w", str, err)
	}
	return val, nil
}

// GetLength reads a millimetre value at index and returns nanometres.
func GetLength(s kicadsexp.Sexp, index int) (int64, error) {
	v, err := GetFloat(s, index)
	if err != nil {
		return 0, err
	}
	return MM(v), nil
}

// GetPoint reads (keyword x y) into nanometres.
// Used for (start X Y), (end X Y), (center X Y), (xy X Y) etc.
func GetPoint(s kicadsexp.Sexp) (geometry.Point, error) {
	x, err := GetLength(s, 1)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("failed to parse X: %w", err)
	}
	y, err := GetLength(s, 2)
	if err != nil {
		return geometry.Point{}, fmt.Errorf("failed to parse Y: %w", err)
	}
	return geometry.Point{X: x, Y: y}, nil
}

// GetChildPoint finds (key x y) below s and reads it.
func GetChildPoint(s kicadsexp.Sexp, key string) (geometry.Point, error) {
	node, ok := FindNode(s, key)
	if !ok {
		return geometry.Point{}, fmt.Errorf("missing required '%s' position", key)
	}
	return GetPoint(node)
}

// GetPosition reads (at x y [angle]). The angle is in degrees and optional.
func GetPosition(s kicadsexp.Sexp) (PositionAngle, error) {
	if name, _ := GetNodeName(s); name != "at" {
		return PositionAngle{}, fmt.Errorf("expected 'at', got %q", name)
	}
	p, err := GetPoint(s)
	if err != nil {
		return PositionAngle{}, err
	}
	result := PositionAngle{Point: p}
	if angle, err := GetFloat(s, 3); err == nil {
		result.Angle = angle
	}
	return result, nil
}

// GetPoints reads the (xy x y) entries of a (pts ...) node. Other entries,
// such as (arc ...) segments of newer files, are skipped.
func GetPoints(pts kicadsexp.Sexp) ([]geometry.Point, error) {
	var points []geometry.Point
	for _, item := range GetListItems(pts) {
		list, ok := item.(*kicadsexp.List)
		if !ok || list.Name() != "xy" {
			continue
		}
		p, err := GetPoint(list)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", where(list), err)
		}
		points = append(points, p)
	}
	return points, nil
}

// GetStroke reads a drawing's stroke. Both the KiCad 6+ form
// (stroke (width w) (type t)) and the bare (width w) of older files are
// accepted.
func GetStroke(s kicadsexp.Sexp) Stroke {
	stroke := Stroke{Width: DefaultStrokeWidth, Type: "solid"}
	node := s
	if strokeNode, ok := FindNode(s, "stroke"); ok {
		node = strokeNode
	}
	if widthNode, ok := FindNode(node, "width"); ok {
		if w, err := GetLength(widthNode, 1); err == nil {
			stroke.Width = w
		}
	}
	if typeNode, ok := FindNode(node, "type"); ok {
		if t, err := GetString(typeNode, 1); err == nil {
			stroke.Type = t
		}
	}
	return stroke
}

// HasSymbol checks if a list contains a specific symbol
func HasSymbol(s kicadsexp.Sexp, symbol string) bool {
	for _, sym := range GetSymbols(s) {
		if sym == symbol {
			return true
		}
	}
	return false
}

// GetNodeName returns the first symbol of a list (the node type/name)
func GetNodeName(s kicadsexp.Sexp) (string, error) {
	switch v := s.(type) {
	case kicadsexp.Symbol:
		return string(v), nil
	case *kicadsexp.List:
		if name := v.Name(); name != "" {
			return name, nil
		}
	}
	return "", fmt.Errorf("expected symbol at head of list")
}

// Where formats the source position of a node for error messages.
func Where(s kicadsexp.Sexp) string {
	if list, ok := s.(*kicadsexp.List); ok {
		return where(list)
	}
	return "?"
}

func where(l *kicadsexp.List) string {
	return fmt.Sprintf("line %d:%d", l.Line, l.Col)
}
