package jsontoken_test

import (
	"fmt"
	"testing"

	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/lattice-substrate/json-wtf/jsoncanon"
	"github.com/lattice-substrate/json-wtf/jsontoken"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseConcurrentIndependentInputs(t *testing.T) {
	shared, err := jsontoken.Parse([]byte(`{"k":["\ud800",1.5,{"z":null,"a":true}]}`))
	if err != nil {
		t.Fatal(err)
	}
	want := string(jsoncanon.Serialize(shared))

	var g errgroup.Group
	g.SetLimit(8)
	for i := range 64 {
		g.Go(func() error {
			// Reading a shared tree and parsing fresh input at the same time.
			if got := string(jsoncanon.Serialize(shared)); got != want {
				return fmt.Errorf("worker %d: shared tree serialized as %s", i, got)
			}
			in := fmt.Sprintf(`{"i":%d,"s":"\udc%02x"}`, i, i)
			v, err := jsontoken.Parse([]byte(in))
			if err != nil {
				return fmt.Errorf("worker %d: %w", i, err)
			}
			if got := string(jsoncanon.Serialize(v)); got != in {
				return fmt.Errorf("worker %d: got %s, want %s", i, got, in)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatal(err)
	}
}
