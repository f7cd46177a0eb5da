package remote

type FindRequest struct {
	Bus  int
	Port int
}

type FindResponse struct {
	Found bool
}

type DrawLCDRequest struct {
	Bus  int
	Port int
	Icon []byte
}

// DrawLCDResponse carries the device status; negative means the unit
// refused the frame. Missing is set when no unit answers at the address.
type DrawLCDResponse struct {
	Status  int8
	Missing bool
}
