package core

// Disposable is implemented by objects that hold resources released by
// Dispose. Dispose must tolerate being called more than once.
type Disposable interface {
	Dispose()
}

// ControllerBase provides listener management for long-lived controller
// objects. Embed it and call NotifyListeners after mutating state:
//
//	type ScrollController struct {
//	    core.ControllerBase
//	    offset float64
//	}
//
//	func (c *ScrollController) SetOffset(offset float64) {
//	    c.offset = offset
//	    c.NotifyListeners()
//	}
//
// The zero value is ready to use. ControllerBase satisfies [Listenable]
// and [Disposable]; pair it with [UseController] and [UseListenable]
// for automatic disposal and rebinding.
type ControllerBase struct {
	Notifier
}

// NotifyListeners invokes all registered listeners in registration
// order.
func (c *ControllerBase) NotifyListeners() {
	c.notify("core.ControllerBase.NotifyListeners")
}
