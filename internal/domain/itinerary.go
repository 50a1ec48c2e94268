package domain

type Activity struct {
	Time        string `json:"time" yaml:"time"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Location    string `json:"location,omitempty" yaml:"location"`
}

type ItineraryDay struct {
	Day           int        `json:"day"`
	Title         string     `json:"title"`
	Date          string     `json:"date"`
	Activities    []Activity `json:"activities"`
	Meals         []string   `json:"meals"`
	Accommodation string     `json:"accommodation"`
}

type Airport struct {
	Name     string `json:"airport" yaml:"airport"`
	Terminal string `json:"terminal,omitempty" yaml:"terminal"`
	Code     string `json:"code" yaml:"code"`
	Time     string `json:"time" yaml:"time"`
}

// FlightRecord is a synthesized flight. BookingRef and Seat stay empty
// until the booking is confirmed.
type FlightRecord struct {
	Airline    string  `json:"airline" yaml:"airline"`
	Flight     string  `json:"flight" yaml:"flight"`
	Date       string  `json:"date" yaml:"-"`
	Departure  Airport `json:"departure" yaml:"departure"`
	Arrival    Airport `json:"arrival" yaml:"arrival"`
	Duration   string  `json:"duration" yaml:"duration"`
	Stops      int     `json:"stops" yaml:"stops"`
	Aircraft   string  `json:"aircraft" yaml:"aircraft"`
	Class      string  `json:"class" yaml:"class"`
	BookingRef string  `json:"booking_ref,omitempty" yaml:"-"`
	Seat       string  `json:"seat,omitempty" yaml:"-"`
}

type HotelRecord struct {
	Name               string   `json:"name" yaml:"name"`
	Address            string   `json:"address" yaml:"address"`
	Phone              string   `json:"phone" yaml:"phone"`
	Email              string   `json:"email" yaml:"email"`
	Rating             int      `json:"rating" yaml:"rating"`
	RoomType           string   `json:"room_type" yaml:"room_type"`
	Amenities          []string `json:"amenities" yaml:"amenities"`
	CheckIn            string   `json:"check_in" yaml:"check_in"`
	CheckOut           string   `json:"check_out" yaml:"check_out"`
	CancellationPolicy string   `json:"cancellation_policy" yaml:"cancellation_policy"`
	BookingRef         string   `json:"booking_ref,omitempty" yaml:"-"`
}

type TravelPlan struct {
	Outbound FlightRecord `json:"outbound"`
	Return   FlightRecord `json:"return"`
	Hotel    HotelRecord  `json:"hotel"`
}
