package model

// Pool counts the deployable pieces of one colour on one board,
// indexed like DeployableTypes.
type Pool [5]int

func (p Pool) Count(t PieceType) int {
	i := t.poolIndex()
	if i < 0 {
		return 0
	}
	return p[i]
}

func (p Pool) IsEmpty() bool {
	for _, n := range p {
		if n > 0 {
			return false
		}
	}
	return true
}

func (p *Pool) add(t PieceType, n int) {
	if i := t.poolIndex(); i >= 0 {
		p[i] += n
	}
}

func (p *Pool) take(t PieceType) bool {
	i := t.poolIndex()
	if i < 0 || p[i] <= 0 {
		return false
	}
	p[i]--
	return true
}

// Total is the number of pieces in the pool.
func (p Pool) Total() int {
	n := 0
	for _, c := range p {
		n += c
	}
	return n
}
