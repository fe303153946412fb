package analysis

import (
	"github.com/su1ph3r/annobench/internal/aggregate"
	"github.com/su1ph3r/annobench/pkg/types"
)

func (a *Analyzer) resourceMeasures() []aggregate.Measure {
	return []aggregate.Measure{
		aggregate.RAM,
		aggregate.Time,
		aggregate.PerKb(a.canon, aggregate.RAM),
		aggregate.PerKb(a.canon, aggregate.Time),
	}
}

// ResourceBySpecies averages memory and runtime per tool and species, raw
// and per kilobase of genome. Species without a genome size are left out.
func (a *Analyzer) ResourceBySpecies(in Inputs) (*types.Table, error) {
	groups, err := a.resourceGroups(in)
	if err != nil {
		return nil, err
	}
	by := []aggregate.Dim{aggregate.Tool, aggregate.Setting, aggregate.Species, aggregate.SpeciesLabel}
	return aggregate.ToTable("resources_by_species", "Resource use per species", by, a.resourceMeasures(), groups, false), nil
}

// ResourceOverall averages the per-species resource means per tool, so
// every species weighs the same.
func (a *Analyzer) ResourceOverall(in Inputs) (*types.Table, error) {
	groups, err := a.resourceGroups(in)
	if err != nil {
		return nil, err
	}
	by := []aggregate.Dim{aggregate.Tool, aggregate.Setting}
	return aggregate.ToTable("resources_overall", "Resource use across species", by, a.resourceMeasures(),
		aggregate.Collapse(groups, len(by)), false), nil
}

// Resources returns the per-species and overall resource tables
func (a *Analyzer) Resources(in Inputs) ([]*types.Table, error) {
	bySpecies, err := a.ResourceBySpecies(in)
	if err != nil {
		return nil, err
	}
	overall, err := a.ResourceOverall(in)
	if err != nil {
		return nil, err
	}
	return []*types.Table{bySpecies, overall}, nil
}

func (a *Analyzer) resourceGroups(in Inputs) ([]aggregate.Group, error) {
	bench := aggregate.Sized(a.canon, in.Bench)
	ref := aggregate.Sized(a.canon, a.reference(in.GeAnno))

	by := []aggregate.Dim{aggregate.Tool, aggregate.Setting, aggregate.Species, aggregate.SpeciesLabel}
	m := a.resourceMeasures()
	groups := concat(
		meanOrNone(abInitio(bench), by, m),
		macroOrNone(evidence(bench), by, []aggregate.Dim{aggregate.Hint}, m),
		meanOrNone(ref, by, m),
	)
	if len(groups) == 0 {
		return nil, types.NewEmptyResult("runs of species with a known genome size")
	}
	return groups, nil
}
