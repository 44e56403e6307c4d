package screenshots

import "image"

// ResolveMonitor maps a monitor selector onto capture bounds. Selector 0 is the
// bounding box of every display; selector n picks the n-th display (1-based).
func ResolveMonitor(displays []Display, monitor int) (image.Rectangle, error) {
	if len(displays) == 0 {
		return image.Rectangle{}, ErrNoDisplays
	}
	if monitor < 0 || monitor > len(displays) {
		return image.Rectangle{}, &monitorRangeError{monitor: monitor, count: len(displays)}
	}
	if monitor == 0 {
		all := displays[0].Bounds
		for _, d := range displays[1:] {
			all = all.Union(d.Bounds)
		}
		return all, nil
	}
	return displays[monitor-1].Bounds, nil
}
