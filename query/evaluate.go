package query

import (
	"github.com/screenpom/screenpom/model"
)

// Evaluate runs a query tree against an element collection and returns
// the matching elements in collection order. A nil query returns every
// element.
//
// The base label/text filter runs first; elements lacking a text
// attribute are dropped whenever a text rule is present. The relation
// steps then run in the fixed order child, parent, left, right, up,
// down, each replacing the working set. Relation sub-queries always
// evaluate against the full original collection, not the working set.
func Evaluate(q *Query, all model.Elements) (model.Elements, error) {
	if q == nil {
		return all, nil
	}

	filtered := baseFilter(q, all)

	if q.Child != nil {
		children, err := Evaluate(q.Child, all)
		if err != nil {
			return nil, err
		}
		// The result becomes the contained children, one entry per
		// (parent, child) pair. No dedup at this step.
		next := make(model.Elements, 0, len(children))
		for _, parent := range filtered {
			for _, child := range children {
				if parent.Rect().StrictlyContains(child.Rect()) {
					next = append(next, child)
				}
			}
		}
		filtered = next
	}

	if q.Parent != nil {
		parents, err := Evaluate(q.Parent, all)
		if err != nil {
			return nil, err
		}
		next := make(model.Elements, 0, len(parents))
		for _, parent := range parents {
			for _, el := range filtered {
				if parent.Rect().StrictlyContains(el.Rect()) {
					next = append(next, parent)
					break
				}
			}
		}
		filtered = next.Dedup()
	}

	sides := []struct {
		side model.Side
		sub  *Query
	}{
		{model.SideLeft, q.Left},
		{model.SideRight, q.Right},
		{model.SideUp, q.Up},
		{model.SideDown, q.Down},
	}
	for _, step := range sides {
		if step.sub == nil {
			continue
		}
		candidates, err := Evaluate(step.sub, all)
		if err != nil {
			return nil, err
		}
		next := make(model.Elements, 0, len(candidates))
		for _, el := range filtered {
			for _, candidate := range candidates {
				ok, err := model.Beside(el, candidate, step.side)
				if err != nil {
					return nil, err
				}
				if ok {
					next = append(next, candidate)
				}
			}
		}
		filtered = next.Dedup()
	}

	return filtered, nil
}

func baseFilter(q *Query, all model.Elements) model.Elements {
	filtered := make(model.Elements, 0, len(all))
	for _, el := range all {
		if !q.Label.Matches(el.Label) {
			continue
		}
		text, hasText := el.Text()
		if q.Text != nil && !hasText {
			continue
		}
		if hasText && !q.Text.Matches(text) {
			continue
		}
		filtered = append(filtered, el)
	}
	return filtered
}
