package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"collabviz/genrenet/internal/network"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	ds, err := network.NewDataset([]network.Record{
		{TrackID: "T1", Artist: "a", Genre: "Pop", Metric: 10, Year: 2019},
		{TrackID: "T1", Artist: "b", Genre: "Rap", Metric: 10, Year: 2019},
		{TrackID: "T2", Artist: "c", Genre: "Pop", Metric: 5, Year: 2020},
		{TrackID: "T2", Artist: "d", Genre: "R&B", Metric: 5, Year: 2020},
	})
	if err != nil {
		t.Fatal(err)
	}
	return NewRouter(NewHandler(ds, network.DefaultConfig()), gin.TestMode)
}

func get(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type snapshotBody struct {
	Title  string `json:"title"`
	Metric string `json:"metric"`
	Nodes  []struct {
		Genre string `json:"genre"`
		Count int    `json:"count"`
	} `json:"nodes"`
	Edges []struct {
		Source string  `json:"source"`
		Target string  `json:"target"`
		Value  float64 `json:"value"`
		Weight float64 `json:"weight"`
		Color  string  `json:"color"`
	} `json:"edges"`
	Legend struct {
		Ticks      []float64 `json:"ticks"`
		Degenerate bool      `json:"degenerate"`
	} `json:"legend"`
}

func TestHealth(t *testing.T) {
	w := get(t, testRouter(t), "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["records"] != float64(4) {
		t.Errorf("expected 4 records, got %v", body["records"])
	}
}

func TestOptions(t *testing.T) {
	w := get(t, testRouter(t), "/options")
	var body struct {
		Genres  []string `json:"genres"`
		Years   []int    `json:"years"`
		Metrics []string `json:"metrics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Genres) != 3 || body.Genres[0] != "Pop" {
		t.Errorf("unexpected genres %v", body.Genres)
	}
	if len(body.Years) != 2 || body.Years[0] != 2019 {
		t.Errorf("unexpected years %v", body.Years)
	}
	if len(body.Metrics) != 2 {
		t.Errorf("unexpected metrics %v", body.Metrics)
	}
}

func TestNetwork_Default(t *testing.T) {
	w := get(t, testRouter(t), "/network")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body snapshotBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Metric != "count" || len(body.Edges) != 2 || len(body.Nodes) != 3 {
		t.Errorf("unexpected snapshot: metric=%s edges=%d nodes=%d", body.Metric, len(body.Edges), len(body.Nodes))
	}
	for _, e := range body.Edges {
		if e.Weight != 1 {
			t.Errorf("equal counts should both weigh 1, got %+v", e)
		}
		if e.Color != "#ffff66" {
			t.Errorf("expected #ffff66, got %s", e.Color)
		}
	}
}

func TestNetwork_Filters(t *testing.T) {
	w := get(t, testRouter(t), "/network?metric=streams&years=2019&genres=Rap,Jazz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body snapshotBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Edges) != 1 {
		t.Fatalf("expected 1 edge, got %d", len(body.Edges))
	}
	e := body.Edges[0]
	if e.Source != "Pop" || e.Target != "Rap" || e.Value != 20 {
		t.Errorf("expected Pop->Rap 20, got %+v", e)
	}
	if len(body.Nodes) != 2 {
		t.Errorf("expected 2019 nodes only, got %d", len(body.Nodes))
	}
	if last := body.Legend.Ticks[len(body.Legend.Ticks)-1]; last != 20 {
		t.Errorf("expected colorbar max 20, got %v", last)
	}
}

func TestNetwork_RepeatedParams(t *testing.T) {
	w := get(t, testRouter(t), "/network?years=2019&years=2020&genres=R%26B")
	var body snapshotBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if len(body.Edges) != 1 || body.Edges[0].Target != "R&B" {
		t.Errorf("expected only Pop->R&B, got %+v", body.Edges)
	}
}

func TestNetwork_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{name: "unknown metric", url: "/network?metric=revenue"},
		{name: "bad year", url: "/network?years=twenty"},
	}
	r := testRouter(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(t, r, tt.url)
			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			var body map[string]string
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil || body["error"] == "" {
				t.Errorf("expected error body, got %s", w.Body.String())
			}
		})
	}
}

func TestSplitList(t *testing.T) {
	got := splitList([]string{"Pop, Rap", "", " Rock ", "a,,b"})
	want := []string{"Pop", "Rap", "Rock", "a", "b"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestNewRouter_UnknownMode(t *testing.T) {
	prev := gin.Mode()
	t.Cleanup(func() { gin.SetMode(prev) })

	ds, err := network.NewDataset(nil)
	if err != nil {
		t.Fatal(err)
	}
	r := NewRouter(NewHandler(ds, nil), "prod")
	if gin.Mode() != gin.ReleaseMode {
		t.Errorf("expected release mode, got %s", gin.Mode())
	}
	if w := get(t, r, "/healthz"); w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}
