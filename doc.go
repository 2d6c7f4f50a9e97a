// Package clickguard prevents rapid repeated clicks on UI elements.
//
// Guarding an element is as easy as:
//
//	guard, err := clickguard.Protect(view)
//
// or, with an explicit guard:
//
//	guard := clickguard.New()
//	if err := guard.AttachAll(view1, view2); err != nil {
//		return err
//	}
//
// Once a guarded element is clicked, the guard starts watching for its watch
// period (DefaultWatchPeriod unless configured) and every click delivered to
// any element attached to the same guard is ignored until the period ends.
// Clicking again while watching does not extend the period, since ignored
// clicks never reach the guard.
//
// A listener can also be guarded directly:
//
//	view.SetOnClickListener(clickguard.NewGuardedListener(func(e widget.Element) bool {
//		// React to the click.
//		return true
//	}))
//
// or wrapped:
//
//	guarded, err := clickguard.Wrap(listener)
//
// Guards schedule their expiry on a looper.Looper, the process-wide
// looper.Main by default. All guard operations must happen on the goroutine
// that drives that looper.
package clickguard
