package s2

/*
https://s2geometry.io/resources/s2cell_statistics.html

level  average area  edge length (approx)
05     83018.57 km2  ~300 km   continental
08     1297.17 km2   ~38 km    a day's ride
10     81.07 km2     ~9 km
11     20.27 km2     ~5 km
12     5.07 km2      ~2 km
13     1.27 km2      ~1.1 km   about a kilometer, about one climb
14     0.32 km2      ~600 m
16     19793 m2      ~150 m    throwing distance
*/

// CellLevel represents the S2 cell level, from 0-30.
type CellLevel int

const (
	CellLevel5  CellLevel = 5
	CellLevel8  CellLevel = 8
	CellLevel10 CellLevel = 10
	CellLevel11 CellLevel = 11
	CellLevel12 CellLevel = 12

	// CellLevel13 is about a kilometer on an edge.
	CellLevel13 CellLevel = 13
	CellLevel14 CellLevel = 14

	// CellLevel16 is approximately 140m on an edge.
	CellLevel16 CellLevel = 16
)

func (l CellLevel) Valid() bool {
	return l >= 0 && l <= 30
}
