package catalog

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmptyCatalog(t *testing.T) {
	got := Summarize(NewBuilder([]string{"A"}).Catalog(), []string{"A"}, true)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestSummarizePartialCoverage(t *testing.T) {
	regions := []string{"A", "B", "C"}
	b := NewBuilder(regions)
	require.NoError(t, b.Merge("A", gptX("1")))
	require.NoError(t, b.Merge("B", gptX("1")))

	got := Summarize(b.Catalog(), regions, true)
	require.Len(t, got, 1)
	s := got[0]
	assert.Equal(t, Key{Format: OpenAIFormat, Name: "gpt-x"}, s.Key)
	assert.False(t, s.Coverage.Global)
	assert.Equal(t, "2/3 regions", s.Coverage.Label)
	assert.Equal(t, []string{"A", "B"}, s.Coverage.Regions)
	assert.Equal(t, []VersionRegions{{Version: "1", Regions: []string{"A", "B"}}}, s.Breakdown)
}

func TestSummarizeGlobalCoverage(t *testing.T) {
	regions := []string{"A", "B", "C"}
	b := NewBuilder(regions)
	for _, r := range regions {
		require.NoError(t, b.Merge(r, gptX("1")))
	}

	got := Summarize(b.Catalog(), regions, true)
	require.Len(t, got, 1)
	assert.True(t, got[0].Coverage.Global)
	assert.Equal(t, AllRegionsLabel, got[0].Coverage.Label)
	assert.Nil(t, got[0].Breakdown)
	assert.Empty(t, Partial(got))
}

func TestSummarizeGlobalAcrossVersions(t *testing.T) {
	regions := []string{"A", "B"}
	b := NewBuilder(regions)
	require.NoError(t, b.Merge("A", gptX("1")))
	require.NoError(t, b.Merge("B", gptX("2")))

	got := Summarize(b.Catalog(), regions, true)
	require.Len(t, got, 1)
	assert.True(t, got[0].Coverage.Global)
}

func TestSummarizeWithoutDetail(t *testing.T) {
	regions := []string{"A", "B"}
	b := NewBuilder(regions)
	require.NoError(t, b.Merge("A", gptX("1")))

	got := Summarize(b.Catalog(), regions, false)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Breakdown)
	assert.Len(t, Partial(got), 1)
}

func TestSummarizeOrdersByKey(t *testing.T) {
	regions := []string{"A"}
	b := NewBuilder(regions)
	for _, d := range []Descriptor{
		{Format: OpenAIFormat, Name: "o3"},
		{Format: "DeepSeek", Name: "DeepSeek-R1"},
		{Format: OpenAIFormat, Name: "gpt-4o"},
		{Format: "Meta", Name: "Llama-4"},
	} {
		require.NoError(t, b.Merge("A", d))
	}

	var names []string
	for _, s := range Summarize(b.Catalog(), regions, false) {
		names = append(names, s.Key.Format+"/"+s.Key.Name)
	}
	assert.Equal(t, []string{"DeepSeek/DeepSeek-R1", "Meta/Llama-4", "OpenAI/gpt-4o", "OpenAI/o3"}, names)
}

func TestBreakdownSortsVersionsAndRegions(t *testing.T) {
	regions := []string{"westus", "eastus", "canadaeast"}
	b := NewBuilder(regions)
	require.NoError(t, b.Merge("westus", gptX("2024-11-20")))
	require.NoError(t, b.Merge("eastus", gptX("2024-11-20")))
	require.NoError(t, b.Merge("canadaeast", gptX("2024-05-13")))

	entry := b.Catalog()[Key{Format: OpenAIFormat, Name: "gpt-x"}]
	assert.Equal(t, []VersionRegions{
		{Version: "2024-05-13", Regions: []string{"canadaeast"}},
		{Version: "2024-11-20", Regions: []string{"eastus", "westus"}},
	}, Breakdown(entry))
}

func TestCoverageUsesSetContainment(t *testing.T) {
	e := newEntry(OpenAIFormat)
	e.Versions["1"] = set("A", "B", "X")

	cov := CoverageOf(e, []string{"A", "B", "A"})
	assert.True(t, cov.Global)

	cov = CoverageOf(e, []string{"A", "B", "C"})
	assert.False(t, cov.Global)
	assert.Equal(t, "3/3 regions", cov.Label)
}

func TestCoverageProperties(t *testing.T) {
	regions := []string{"r0", "r1", "r2", "r3", "r4", "r5"}
	properties := gopter.NewProperties(nil)

	properties.Property("missing one region is never global", prop.ForAll(
		func(skip int) bool {
			b := NewBuilder(regions)
			for i, r := range regions {
				if i == skip {
					continue
				}
				_ = b.Merge(r, gptX("1"))
			}
			out := Summarize(b.Catalog(), regions, false)
			return len(out) == 1 && !out[0].Coverage.Global
		},
		gen.IntRange(0, len(regions)-1),
	))

	properties.Property("global iff every region is covered", prop.ForAll(
		func(mask []bool) bool {
			b := NewBuilder(regions)
			covered := 0
			for i, r := range regions {
				if i < len(mask) && mask[i] {
					_ = b.Merge(r, gptX("1"))
					covered++
				}
			}
			out := Summarize(b.Catalog(), regions, false)
			if covered == 0 {
				return len(out) == 0
			}
			return len(out) == 1 && out[0].Coverage.Global == (covered == len(regions))
		},
		gen.SliceOfN(len(regions), gen.Bool()),
	))

	properties.TestingRun(t)
}
