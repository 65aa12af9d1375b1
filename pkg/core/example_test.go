package core_test

import (
	"fmt"

	"github.com/go-drift/orb/pkg/core"
)

// This example shows how to create an Orb for reactive state.
// Orbs are thread-safe and can be shared across goroutines.
func ExampleOrb() {
	// Create an orb with an initial value
	counter := core.NewOrb(0)

	// Add a listener that fires when the value changes
	unsub := counter.AddListener(func(value int) {
		fmt.Printf("Counter changed to: %d\n", value)
	})

	// Update the value - this triggers all listeners
	counter.Set(5)

	// Read the current value
	current := counter.Value()
	fmt.Printf("Current value: %d\n", current)

	// Clean up when done
	unsub()

	// Output:
	// Counter changed to: 5
	// Current value: 5
}

// This example shows how to use an orb with a custom equality function.
// This is useful when you want to avoid unnecessary updates.
func ExampleNewOrbWithEquality() {
	type User struct {
		ID   int
		Name string
	}

	// Only notify listeners when the user ID changes
	user := core.NewOrbWithEquality(User{ID: 1, Name: "Alice"}, func(a, b User) bool {
		return a.ID == b.ID
	})

	user.AddListener(func(u User) {
		fmt.Printf("User changed: %s\n", u.Name)
	})

	// This won't trigger listeners because ID is the same
	user.Set(User{ID: 1, Name: "Alice Updated"})

	// This will trigger listeners because ID changed
	user.Set(User{ID: 2, Name: "Bob"})

	// Output:
	// User changed: Bob
}

// This example shows how to apply a transform to the current value.
func ExampleOrb_Update() {
	count := core.NewOrb(10)

	count.Update(func(v int) int { return v * 2 })

	fmt.Printf("After update: %d\n", count.Value())

	// Output:
	// After update: 20
}

// This example shows how to use a Notifier for signals without a value.
func ExampleNotifier() {
	notifier := core.NewNotifier()

	unsub := notifier.AddListener(func() {
		fmt.Println("Refresh triggered!")
	})

	// Fire the notification
	notifier.Notify()

	// Clean up
	unsub()

	// Output:
	// Refresh triggered!
}

// refreshController shows the conventional controller shape: embed
// ControllerBase and call NotifyListeners after mutating state.
type refreshController struct {
	core.ControllerBase
}

func (c *refreshController) Refresh() {
	c.NotifyListeners()
}

func ExampleControllerBase() {
	controller := &refreshController{}

	controller.AddListener(func() {
		fmt.Println("Controller notified")
	})

	controller.Refresh()

	// Output:
	// Controller notified
}

// counterLabel is a component bound to a shared orb with UseOrb.
type counterLabel struct {
	core.StatefulBase
	counter *core.Orb[int]
}

func (w counterLabel) CreateState() core.State { return &counterLabelState{} }

type counterLabelState struct {
	core.StateBase
}

func (s *counterLabelState) Build(ctx core.BuildContext) core.Widget {
	count, _ := core.UseOrb(s, ctx.Widget().(counterLabel).counter)
	fmt.Printf("count is %d\n", count)
	return nil
}

// This example shows the full flow: a component binds to an orb, an
// external write lands, and the next flush rebuilds the component with
// the new value.
func ExampleUseOrb() {
	owner := core.NewBuildOwner()
	counter := core.NewOrb(2)

	core.MountRoot(counterLabel{counter: counter}, owner)

	counter.Set(3)
	owner.FlushBuild()

	// Output:
	// count is 2
	// count is 3
}

// stepper owns a private orb and advances it until it reaches a limit.
type stepper struct {
	core.StatefulBase
}

func (stepper) CreateState() core.State { return &stepperState{} }

type stepperState struct {
	core.StateBase
}

func (s *stepperState) Build(ctx core.BuildContext) core.Widget {
	steps := core.UseLocalOrb(s, 0)
	fmt.Printf("step %d\n", steps.Value())
	if steps.Value() < 2 {
		steps.Set(steps.Value() + 1)
	}
	return nil
}

// This example shows component-local state: the orb is created on the
// first build and each write schedules another rebuild.
func ExampleUseLocalOrb() {
	owner := core.NewBuildOwner()

	core.MountRoot(stepper{}, owner)
	owner.FlushBuild()

	// Output:
	// step 0
	// step 1
	// step 2
}

// greetingLabel reads a string provided by an ancestor.
type greetingLabel struct {
	core.StatelessBase
}

func (greetingLabel) Build(ctx core.BuildContext) core.Widget {
	if greeting, ok := core.ProviderOf[string](ctx); ok {
		fmt.Println(greeting)
	}
	return nil
}

// This example shows passing a value down the tree without threading it
// through every widget in between.
func ExampleInheritedProvider() {
	owner := core.NewBuildOwner()

	core.MountRoot(core.InheritedProvider[string]{
		Value: "hello from above",
		Child: greetingLabel{},
	}, owner)

	// Output:
	// hello from above
}

// This example shows an inline stateful widget built from closures,
// for small fragments that don't need a named state type.
func ExampleStateful() {
	owner := core.NewBuildOwner()

	var increment func()
	widget := core.Stateful(
		func() int { return 0 },
		func(count int, ctx core.BuildContext, setState func(func(int) int)) core.Widget {
			fmt.Printf("count: %d\n", count)
			increment = func() {
				setState(func(c int) int { return c + 1 })
			}
			return nil
		},
	)

	core.MountRoot(widget, owner)
	increment()
	owner.FlushBuild()

	// Output:
	// count: 0
	// count: 1
}
