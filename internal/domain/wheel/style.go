package wheel

// Radial limits of each wheel.
const (
	rayLimit     = 1.1
	scoringLimit = 1.15
	boundaryR    = 1.0
	labelRadius  = 0.55
	labelSize    = 10
)

// Colours follow the dashboard palette.
var (
	boundaryStroke = Style{Color: "#000000", Width: 2, Opacity: 1}

	fourStyle   = Style{Color: "#2196F3", Width: 1.5, Opacity: 0.7}
	sixStyle    = Style{Color: "#f44336", Width: 2, Opacity: 0.8}
	caughtStyle = Style{Color: "#d32f2f", Width: 1.5, Opacity: 0.7}
	sectorStyle = Style{Color: "#666666", Width: 1, Opacity: 0.8}

	boundariesFill = Style{Color: "#e8f5e9", Opacity: 0.3}
	caughtFill     = Style{Color: "#ffebee", Opacity: 0.3}
	scoringFill    = Style{Color: "#e3f2fd", Opacity: 0.2}

	labelColor = "#333333"
)

func boundaryCircle(fill Style) Circle {
	return Circle{Radius: boundaryR, Stroke: boundaryStroke, Fill: fill}
}
