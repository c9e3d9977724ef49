// Package ebitenhost runs photoview engines inside an Ebitengine game.
//
// A [View] implements [photoview.Host] for one *ebiten.Image: the engine's
// matrix is drawn through an ebiten.GeoM, callbacks the engine posts run on
// the next Update, and intercept requests are recorded for the container.
//
// A [Pager] lays views out side by side and is the container those requests
// are addressed to. Touches and the left mouse button are diffed frame by
// frame into photoview.MotionEvents and routed to the current view; when
// the view releases a horizontal drag at its edge, the pager takes the
// gesture over and scrolls to the neighbouring page. The mouse wheel zooms
// the current view around the cursor.
//
//	pager := ebitenhost.NewPager(ebitenhost.PagerConfig{Width: 800, Height: 600})
//	pager.Add(img, photoview.Config{})
//	if err := ebitenhost.Run(pager, ebitenhost.RunConfig{Title: "photos"}); err != nil {
//		log.Fatal(err)
//	}
//
// # Injected input
//
// InjectTap, InjectDrag and InjectPinch queue synthetic pointer snapshots
// that replace real input one frame at a time. A [Script] loaded from JSON
// sequences them, for demos and automated checks.
package ebitenhost
