package ports

// LineChart describes one x-y series rendered to an image file.
type LineChart struct {
	X      []float64
	Y      []float64
	Path   string
	Title  string
	XLabel string
	YLabel string
}

// ChartRenderer renders line charts to raster images
type ChartRenderer interface {
	RenderLineChart(chart LineChart) error
}
