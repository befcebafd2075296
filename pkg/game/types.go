package game

// Point represents a coordinate on the game board
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns p moved by the delta of d
func (p Point) Add(d Direction) Point {
	delta := d.Delta()
	return Point{X: p.X + delta.X, Y: p.Y + delta.Y}
}

// Direction is the heading of the snake
type Direction int

const (
	DirNone Direction = iota
	DirUp
	DirDown
	DirLeft
	DirRight
)

// Delta returns the unit step for the direction
func (d Direction) Delta() Point {
	switch d {
	case DirUp:
		return Point{X: 0, Y: -1}
	case DirDown:
		return Point{X: 0, Y: 1}
	case DirLeft:
		return Point{X: -1, Y: 0}
	case DirRight:
		return Point{X: 1, Y: 0}
	default:
		return Point{}
	}
}

// Opposite returns the reverse heading. None is its own opposite.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	default:
		return DirNone
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "none"
	}
}

// ParseDirection maps a client action name to a direction
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	}
	return DirNone, false
}

// Status is the game state machine position
type Status int

const (
	StatusPaused Status = iota // Created and reset games start here
	StatusRunning
	StatusOver
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusOver:
		return "over"
	default:
		return "paused"
	}
}

// Collision describes why a tick ended the game
type Collision int

const (
	CollisionNone Collision = iota
	CollisionWall
	CollisionSelf
	CollisionBoardFull // No free cell left for food
)

// TickResult reports what a single tick did
type TickResult struct {
	Moved     bool
	Ate       bool
	Collision Collision
}

// Over reports whether the tick ended the game
func (r TickResult) Over() bool {
	return r.Collision != CollisionNone
}

// Snapshot is a copy of the current game for renderers and clients
type Snapshot struct {
	Snake      []Point `json:"snake"`
	Food       Point   `json:"food"`
	GridSize   int     `json:"gridSize"`
	Score      int     `json:"score"`
	Status     string  `json:"status"`
	Direction  string  `json:"direction"`
	Paused     bool    `json:"paused"`
	GameOver   bool    `json:"gameOver"`
	CrashPoint *Point  `json:"crashPoint,omitempty"`
}
