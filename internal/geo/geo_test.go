package geo

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCollection = `{
  "type": "FeatureCollection",
  "features": [
    {"type": "Feature", "properties": {"kode": 31, "Propinsi": "DKI JAKARTA"},
     "geometry": {"type": "Polygon", "coordinates": [[[106.7,-6.1],[106.9,-6.1],[106.9,-6.3],[106.7,-6.3],[106.7,-6.1]]]}},
    {"type": "Feature", "properties": {"NAME_1": "Bali"},
     "geometry": {"type": "MultiPolygon", "coordinates": [[[[115.0,-8.1],[115.6,-8.1],[115.6,-8.8],[115.0,-8.8],[115.0,-8.1]]]]}},
    {"type": "Feature", "properties": {"name": "Broken"},
     "geometry": {"type": "Polygon", "coordinates": "oops"}},
    {"type": "Feature", "properties": {"ID": "99"},
     "geometry": {"type": "Point", "coordinates": [110, -7]}}
  ]
}`

func feature(props map[string]any, g orb.Geometry) *Feature {
	return &Feature{Geometry: g, Properties: geojson.Properties(props)}
}

func square(lon, lat, d float64) orb.Polygon {
	return orb.Polygon{{{lon, lat}, {lon + d, lat}, {lon + d, lat - d}, {lon, lat - d}, {lon, lat}}}
}

func TestDecode_Lenient(t *testing.T) {
	coll, err := Decode([]byte(sampleCollection))
	require.NoError(t, err)
	require.Equal(t, 4, coll.Len())

	assert.IsType(t, orb.Polygon{}, coll.Features[0].Geometry)
	assert.IsType(t, orb.MultiPolygon{}, coll.Features[1].Geometry)
	// 坐标损坏：保留属性，几何为空
	assert.Nil(t, coll.Features[2].Geometry)
	assert.Equal(t, "Broken", coll.Features[2].Properties["name"])
	// 非面状几何丢弃
	assert.Nil(t, coll.Features[3].Geometry)
}

func TestDecode_BrokenEnvelope(t *testing.T) {
	_, err := Decode([]byte(`not json`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"type":"Feature","properties":{}}`))
	assert.ErrorIs(t, err, ErrNotFeatureCollection)

	_, err = Decode([]byte(`{"type":"FeatureCollection"}`))
	assert.ErrorIs(t, err, ErrNotFeatureCollection)
}

func TestCollection_LenNil(t *testing.T) {
	var c *Collection
	assert.Equal(t, 0, c.Len())
}

func TestCanonicalKey(t *testing.T) {
	cases := []struct {
		name  string
		props map[string]any
		want  Key
	}{
		{"numeric kode", map[string]any{"kode": float64(31), "Propinsi": "DKI JAKARTA"}, Key{"31", "DKI JAKARTA"}},
		{"kode before ID", map[string]any{"kode": "32", "ID": "9"}, Key{"32", UnknownName}},
		{"ID fallback", map[string]any{"ID": 11, "NAME_1": "Aceh"}, Key{"11", "Aceh"}},
		{"empty kode skipped", map[string]any{"kode": "", "ID": "12"}, Key{"12", UnknownName}},
		{"name order", map[string]any{"NAME_1": "Bali", "name": "bali"}, Key{"", "Bali"}},
		{"lowercase name", map[string]any{"name": "Papua"}, Key{"", "Papua"}},
		{"nothing", map[string]any{}, Key{"", UnknownName}},
		{"null values", map[string]any{"kode": nil, "Propinsi": nil}, Key{"", UnknownName}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CanonicalKey(feature(tc.props, nil)))
		})
	}
	assert.Equal(t, Key{Name: UnknownName}, CanonicalKey(nil))
}

func TestNameCandidates(t *testing.T) {
	f := feature(map[string]any{"Propinsi": "JAWA BARAT", "name": "West Java"}, nil)
	assert.Equal(t, []string{"", "West Java", "JAWA BARAT"}, NameCandidates(f))
	assert.Equal(t, []string{"", "", ""}, NameCandidates(nil))
}

func TestProject_Center(t *testing.T) {
	p := Reference()
	got := p.Project(orb.Point{118, -2})
	assert.InDelta(t, 480, got[0], 1e-9)
	assert.InDelta(t, 250, got[1], 1e-9)

	// 北面 y 更小，东面 x 更大
	ne := p.Project(orb.Point{120, 0})
	assert.Greater(t, ne[0], 480.0)
	assert.Less(t, ne[1], 250.0)
}

func TestProject_InvertRoundTrip(t *testing.T) {
	p := Reference()
	for _, ll := range []orb.Point{{95, 6}, {141, -11}, {106.8, -6.2}} {
		back := p.Invert(p.Project(ll))
		assert.InDelta(t, ll[0], back[0], 1e-9)
		assert.InDelta(t, ll[1], back[1], 1e-9)
	}
}

func TestProject_PoleClamped(t *testing.T) {
	got := Reference().Project(orb.Point{118, 90})
	assert.False(t, math.IsInf(got[1], 0))
	assert.False(t, math.IsNaN(got[1]))
}

func TestPathFor(t *testing.T) {
	p := Reference()
	f := feature(nil, square(118, -2, 1))
	d := p.PathFor(f)
	require.NotEmpty(t, d)
	assert.Equal(t, byte('M'), d[0])
	assert.Equal(t, byte('Z'), d[len(d)-1])
	assert.Contains(t, d, "M480,250L")
	// 确定性
	assert.Equal(t, d, p.PathFor(f))
}

func TestPathFor_MultiPolygonRings(t *testing.T) {
	mp := orb.MultiPolygon{square(100, 0, 1), square(120, -5, 1)}
	d := Reference().PathFor(feature(nil, mp))
	assert.Equal(t, 2, countByte(d, 'M'))
	assert.Equal(t, 2, countByte(d, 'Z'))
}

func TestPathFor_Degenerate(t *testing.T) {
	p := Reference()
	assert.Empty(t, p.PathFor(nil))
	assert.Empty(t, p.PathFor(feature(nil, nil)))
	assert.Empty(t, p.PathFor(feature(nil, orb.Polygon{{{1, 1}, {2, 2}}})))
	bad := orb.Polygon{{{math.NaN(), 1}, {2, 2}, {3, 1}, {1, 1}}}
	assert.Empty(t, p.PathFor(feature(nil, bad)))
}

func countByte(s string, c byte) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] == c {
			n++
		}
	}
	return n
}

func TestContainsAndHitTest(t *testing.T) {
	p := Reference()
	big := feature(map[string]any{"kode": "1"}, square(110, 0, 10))
	small := feature(map[string]any{"kode": "2"}, square(114, -4, 2))
	paths := Build(&Collection{Features: []*Feature{big, small}}, p)
	require.Len(t, paths, 2)

	inSmall := p.Project(orb.Point{115, -5})
	inBigOnly := p.Project(orb.Point{111, -1})
	outside := p.Project(orb.Point{130, 5})

	assert.True(t, paths[0].Shape.Contains(inSmall))
	// 后绘制的在上层
	assert.Equal(t, 1, HitTest(paths, inSmall))
	assert.Equal(t, 0, HitTest(paths, inBigOnly))
	assert.Equal(t, -1, HitTest(paths, outside))
}

func TestContains_Hole(t *testing.T) {
	p := Reference()
	poly := orb.Polygon{
		{{110, 0}, {120, 0}, {120, -10}, {110, -10}, {110, 0}},
		{{113, -3}, {117, -3}, {117, -7}, {113, -7}, {113, -3}},
	}
	s := p.ProjectFeature(feature(nil, poly))
	assert.False(t, s.Contains(p.Project(orb.Point{115, -5})))
	assert.True(t, s.Contains(p.Project(orb.Point{111, -1})))
}

func TestPathCache(t *testing.T) {
	coll := &Collection{Features: []*Feature{feature(map[string]any{"kode": "31"}, square(106, -6, 1))}}
	var c PathCache
	a := c.Paths(coll, Reference())
	b := c.Paths(coll, Reference())
	require.Len(t, a, 1)
	assert.Same(t, &a[0], &b[0])
	assert.Equal(t, "31", a[0].RegionID)

	moved := Reference()
	moved.Scale = 900
	d := c.Paths(coll, moved)
	assert.NotSame(t, &a[0], &d[0])
	assert.NotEqual(t, a[0].Path, d[0].Path)

	c.Invalidate()
	e := c.Paths(coll, moved)
	assert.NotSame(t, &d[0], &e[0])
	assert.Equal(t, d[0].Path, e[0].Path)

	assert.Nil(t, c.Paths(nil, moved))
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(sampleCollection))
	}))
	defer srv.Close()

	coll, err := HTTPSource{URL: srv.URL + "/geo.json"}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, coll.Len())

	_, err = HTTPSource{URL: srv.URL + "/missing"}.Fetch(context.Background())
	assert.Error(t, err)
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "provinces.json")
	require.NoError(t, os.WriteFile(path, []byte(sampleCollection), 0o644))
	coll, err := FileSource{Path: path}.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, coll.Len())

	_, err = FileSource{Path: filepath.Join(t.TempDir(), "none.json")}.Fetch(context.Background())
	assert.Error(t, err)
}

type countingSource struct {
	calls atomic.Int32
	coll  *Collection
	err   error
}

func (s *countingSource) Fetch(context.Context) (*Collection, error) {
	s.calls.Add(1)
	return s.coll, s.err
}

func TestLoader_OneShot(t *testing.T) {
	src := &countingSource{coll: &Collection{}}
	l := NewLoader(src)
	assert.False(t, l.Resolved())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = l.Load(context.Background())
		}()
	}
	wg.Wait()
	assert.EqualValues(t, 1, src.calls.Load())
	assert.True(t, l.Resolved())
}

func TestLoader_FailureIsSticky(t *testing.T) {
	boom := errors.New("boom")
	src := &countingSource{err: boom}
	l := NewLoader(src)
	_, err := l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	_, err = l.Load(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.EqualValues(t, 1, src.calls.Load())
}
