package core

import "testing"

// readerRecord collects what a provider-reading component observed.
type readerRecord struct {
	builds      int
	depsChanges int
	values      []int
	oks         []bool
}

// providerReader reads the nearest int provider on every build.
type providerReader struct {
	StatefulBase
	rec *readerRecord
}

func (w providerReader) CreateState() State { return &providerReaderState{} }

type providerReaderState struct {
	StateBase
}

func (s *providerReaderState) Build(ctx BuildContext) Widget {
	w := ctx.Widget().(providerReader)
	value, ok := ProviderOf[int](ctx)
	w.rec.builds++
	w.rec.values = append(w.rec.values, value)
	w.rec.oks = append(w.rec.oks, ok)
	return nil
}

func (s *providerReaderState) DidChangeDependencies() {
	s.Element().Widget().(providerReader).rec.depsChanges++
}

// providerHost provides a mutable int to its subtree.
type providerHost struct {
	StatefulBase
	initial int
	rec     *readerRecord
}

func (w providerHost) CreateState() State { return &providerHostState{} }

type providerHostState struct {
	StateBase
	value int
}

func (s *providerHostState) InitState() {
	s.value = s.Element().Widget().(providerHost).initial
}

func (s *providerHostState) setValue(v int) {
	s.SetState(func() { s.value = v })
}

func (s *providerHostState) Build(ctx BuildContext) Widget {
	return InheritedProvider[int]{
		Value: s.value,
		Child: providerReader{rec: ctx.Widget().(providerHost).rec},
	}
}

func TestInheritedProvider_DeliversValue(t *testing.T) {
	owner := NewBuildOwner()
	rec := &readerRecord{}

	MountRoot(providerHost{initial: 10, rec: rec}, owner)

	if rec.builds != 1 {
		t.Fatalf("expected 1 build, got %d", rec.builds)
	}
	if !rec.oks[0] {
		t.Fatal("expected the provider to be found")
	}
	if rec.values[0] != 10 {
		t.Errorf("expected value 10, got %d", rec.values[0])
	}
}

func TestInheritedProvider_ChangeNotifiesDependents(t *testing.T) {
	owner := NewBuildOwner()
	rec := &readerRecord{}

	root := MountRoot(providerHost{initial: 10, rec: rec}, owner)

	state := root.(*StatefulElement).state.(*providerHostState)
	state.setValue(20)
	owner.FlushBuild()

	if rec.builds != 2 {
		t.Errorf("expected one rebuild, got %d builds", rec.builds)
	}
	if rec.values[len(rec.values)-1] != 20 {
		t.Errorf("expected the rebuild to observe 20, got %d", rec.values[len(rec.values)-1])
	}
	if rec.depsChanges != 1 {
		t.Errorf("expected DidChangeDependencies once, got %d", rec.depsChanges)
	}
}

func TestInheritedProvider_EqualValueSkipsNotification(t *testing.T) {
	owner := NewBuildOwner()
	rec := &readerRecord{}

	root := MountRoot(providerHost{initial: 10, rec: rec}, owner)

	state := root.(*StatefulElement).state.(*providerHostState)
	state.setValue(10)
	owner.FlushBuild()

	// The subtree still rebuilds structurally, but dependents are not
	// notified for an unchanged value.
	if rec.depsChanges != 0 {
		t.Errorf("expected no dependency notification, got %d", rec.depsChanges)
	}
	if rec.values[len(rec.values)-1] != 10 {
		t.Errorf("expected value 10, got %d", rec.values[len(rec.values)-1])
	}
}

func TestProviderOf_NoProviderInScope(t *testing.T) {
	owner := NewBuildOwner()
	rec := &readerRecord{}

	MountRoot(providerReader{rec: rec}, owner)

	if rec.oks[0] {
		t.Error("expected no provider to be found")
	}
	if rec.values[0] != 0 {
		t.Errorf("expected the zero value, got %d", rec.values[0])
	}
}

func TestProviderOf_NearestProviderWins(t *testing.T) {
	owner := NewBuildOwner()
	rec := &readerRecord{}

	MountRoot(InheritedProvider[int]{
		Value: 1,
		Child: InheritedProvider[int]{
			Value: 2,
			Child: providerReader{rec: rec},
		},
	}, owner)

	if rec.values[0] != 2 {
		t.Errorf("expected the nearest provider's value 2, got %d", rec.values[0])
	}
}

// dualRecord holds values read from two differently typed providers.
type dualRecord struct {
	number   int
	label    string
	numberOK bool
	labelOK  bool
}

type dualReader struct {
	StatelessBase
	rec *dualRecord
}

func (w dualReader) Build(ctx BuildContext) Widget {
	w.rec.number, w.rec.numberOK = ProviderOf[int](ctx)
	w.rec.label, w.rec.labelOK = ProviderOf[string](ctx)
	return nil
}

func TestProviderOf_DifferentTypesCoexist(t *testing.T) {
	owner := NewBuildOwner()
	rec := &dualRecord{}

	MountRoot(InheritedProvider[int]{
		Value: 7,
		Child: InheritedProvider[string]{
			Value: "label",
			Child: dualReader{rec: rec},
		},
	}, owner)

	if !rec.numberOK || rec.number != 7 {
		t.Errorf("expected int provider value 7, got %d (ok=%v)", rec.number, rec.numberOK)
	}
	if !rec.labelOK || rec.label != "label" {
		t.Errorf("expected string provider value 'label', got %q (ok=%v)", rec.label, rec.labelOK)
	}
}
