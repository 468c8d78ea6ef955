// Package sparsemat implements a dynamic row-of-map sparse symmetric matrix.
//
// It backs the live Hessian maintained during the reverse sweep (package
// trace): edge-pushing needs fast random read/write of off-diagonal entries,
// fast iteration over a single row, and fast deletion of a whole row, which
// a nested map supports directly. A flat map keyed by a canonical unordered
// pair would also satisfy those three operations but loses cheap per-row
// iteration, which the sweep performs once per visited operator; the
// row-of-map layout was chosen for that reason.
package sparsemat

import "gonum.org/v1/gonum/mat"

// SymMat is a dynamic sparse symmetric matrix of size n x n. Every stored
// (i,j) with i != j has a matching (j,i) entry holding the same value; the
// zero value is never stored.
type SymMat struct {
	n    int
	rows []map[int]float64
}

// New allocates an empty n x n sparse symmetric matrix.
func New(n int) *SymMat {
	return &SymMat{n: n, rows: make([]map[int]float64, n)}
}

// N returns the matrix dimension.
func (m *SymMat) N() int { return m.n }

// Read returns the value at (i,j), or 0 if absent.
func (m *SymMat) Read(i, j int) float64 {
	row := m.rows[i]
	if row == nil {
		return 0
	}
	return row[j]
}

// Add adds delta to the (i,j) entry (and, if i != j, to (j,i)), creating the
// entry if it did not already exist. A net value of exactly zero removes
// the entry (and its empty row), as Set(i, j, 0) does.
func (m *SymMat) Add(i, j int, delta float64) {
	m.set(i, j, m.Read(i, j)+delta)
}

// Set writes the (i,j) entry (and, if i != j, the (j,i) entry) to v,
// removing the entry (and its empty row) when v is exactly zero.
func (m *SymMat) Set(i, j int, v float64) {
	m.set(i, j, v)
}

func (m *SymMat) set(i, j int, v float64) {
	if v == 0 {
		m.remove(i, j)
		if i != j {
			m.remove(j, i)
		}
		return
	}
	m.store(i, j, v)
	if i != j {
		m.store(j, i, v)
	}
}

func (m *SymMat) store(i, j int, v float64) {
	if m.rows[i] == nil {
		m.rows[i] = make(map[int]float64)
	}
	m.rows[i][j] = v
}

func (m *SymMat) remove(i, j int) {
	row := m.rows[i]
	if row == nil {
		return
	}
	delete(row, j)
	if len(row) == 0 {
		m.rows[i] = nil
	}
}

// Erase removes row i, column i, and the diagonal entry (i,i) in one pass.
func (m *SymMat) Erase(i int) {
	row := m.rows[i]
	for j := range row {
		if j == i {
			continue
		}
		m.remove(j, i)
	}
	m.rows[i] = nil
}

// RowPtr returns the row map for i, or nil if the row is empty. The
// returned map must not be mutated directly by callers other than this
// package; the reverse sweep only ranges over it.
func (m *SymMat) RowPtr(i int) map[int]float64 {
	return m.rows[i]
}

// NNZ returns the number of stored entries, counting both (i,j) and (j,i)
// for i != j.
func (m *SymMat) NNZ() int {
	n := 0
	for _, row := range m.rows {
		n += len(row)
	}
	return n
}

// Dense materializes the leading n x n block of the sparse matrix as a
// gonum dense symmetric matrix, the seam between this package's row-of-map
// representation (kept for the reverse sweep's row-iteration and
// row-erasure needs) and gonum's factorization routines, which only
// operate on mat.Matrix implementations. n is ordinarily the declared
// input count: by the time a sweep finishes, every trace index at or
// beyond it has been erased, so restricting to n discards nothing live.
func (m *SymMat) Dense(n int) *mat.SymDense {
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n && i < len(m.rows); i++ {
		for j, v := range m.rows[i] {
			if j >= i && j < n {
				d.SetSym(i, j, v)
			}
		}
	}
	return d
}

// Clone returns an independent deep copy of the matrix.
func (m *SymMat) Clone() *SymMat {
	clone := New(m.n)
	for i, row := range m.rows {
		if row == nil {
			continue
		}
		cp := make(map[int]float64, len(row))
		for j, v := range row {
			cp[j] = v
		}
		clone.rows[i] = cp
	}
	return clone
}
