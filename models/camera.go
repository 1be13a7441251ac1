package models

// Camera is a speed camera installed at an intersection.
type Camera struct {
	ID           uint   `json:"id" gorm:"primaryKey"`
	CrossStreet1 string `json:"cross_street_1" gorm:"size:100;not null;uniqueIndex:idx_cameras_intersection,priority:1"`
	CrossStreet2 string `json:"cross_street_2" gorm:"size:100;not null;uniqueIndex:idx_cameras_intersection,priority:2"`
	Zipcode      string `json:"zipcode" gorm:"size:5;not null;index;uniqueIndex:idx_cameras_intersection,priority:3"`
	SpeedLimit   int    `json:"speed_limit" gorm:"not null"`
	Direction    string `json:"direction" gorm:"size:2;not null"`
}

// Intersection identifies the physical location of a camera. Street order
// is significant.
type Intersection struct {
	CrossStreet1 string
	CrossStreet2 string
	Zipcode      string
}

func (c Camera) Intersection() Intersection {
	return Intersection{
		CrossStreet1: c.CrossStreet1,
		CrossStreet2: c.CrossStreet2,
		Zipcode:      c.Zipcode,
	}
}

// CameraPatch carries a partial update. A nil field keeps its current value.
type CameraPatch struct {
	CrossStreet1 *string `json:"cross_street_1"`
	CrossStreet2 *string `json:"cross_street_2"`
	Zipcode      *string `json:"zipcode"`
	SpeedLimit   *int    `json:"speed_limit"`
	Direction    *string `json:"direction"`
}

// Apply returns a copy of c with every present patch field applied.
func (p CameraPatch) Apply(c Camera) Camera {
	if p.CrossStreet1 != nil {
		c.CrossStreet1 = *p.CrossStreet1
	}
	if p.CrossStreet2 != nil {
		c.CrossStreet2 = *p.CrossStreet2
	}
	if p.Zipcode != nil {
		c.Zipcode = *p.Zipcode
	}
	if p.SpeedLimit != nil {
		c.SpeedLimit = *p.SpeedLimit
	}
	if p.Direction != nil {
		c.Direction = *p.Direction
	}
	return c
}

// Directions lists the accepted travel directions.
var Directions = []string{"N", "S", "E", "W", "NE", "NW", "SE", "SW"}

func IsDirection(s string) bool {
	for _, d := range Directions {
		if d == s {
			return true
		}
	}
	return false
}
