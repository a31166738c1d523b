package plan

// Model is the linear fatigue pace model. Pace grows linearly with progress
// ratio r = x/total: pace(x) = p0 * (1 + s*r), with p0 chosen so the
// distance-weighted average equals totalMovingTime/totalDistance. Leg times
// come from the exact definite integral, never a numeric approximation, so
// leg boundaries always sum back to the total.
type Model struct {
	TotalMi   float64
	MovingSec float64
	Slowdown  float64 // fraction: 0.2 means the finish pace is 20% slower than the start
}

func NewModel(totalMi, movingSec, slowdownPct float64) Model {
	return Model{TotalMi: totalMi, MovingSec: movingSec, Slowdown: slowdownPct / 100}
}

func (m Model) averagePaceSec() float64 {
	if m.TotalMi <= 0 {
		return 0
	}
	return m.MovingSec / m.TotalMi
}

// StartPaceSec is p0 = average / (1 + s/2).
func (m Model) StartPaceSec() float64 {
	return m.averagePaceSec() / (1 + m.Slowdown/2)
}

// EndPaceSec is p0 * (1 + s).
func (m Model) EndPaceSec() float64 {
	return m.StartPaceSec() * (1 + m.Slowdown)
}

// LegSeconds integrates pace(x) over [a, b] miles:
// p0 * ((b - a) + s*(b^2 - a^2)/(2*total)).
func (m Model) LegSeconds(a, b float64) float64 {
	if m.TotalMi <= 0 || b <= a {
		return 0
	}
	if m.Slowdown == 0 {
		return (b - a) / m.TotalMi * m.MovingSec
	}
	p0 := m.StartPaceSec()
	return p0 * ((b - a) + m.Slowdown*(b*b-a*a)/(2*m.TotalMi))
}
