package domain

// Status dirige o despacho de cada linha para o seu handler
type Status string

const (
	StatusNew          Status = ""
	StatusOff          Status = "Off"
	StatusVideoReady   Status = "Video Ready"
	StatusImageReady   Status = "Image Ready"
	StatusPriceChanged Status = "Price Changed"
	StatusRunning      Status = "Running"
	StatusPaused       Status = "Paused"
	StatusDone         Status = "Done"
)

// ActionableStatuses são os status que exigem um handler registrado
var ActionableStatuses = []Status{
	StatusOff,
	StatusVideoReady,
	StatusImageReady,
	StatusPriceChanged,
}

func (s Status) String() string {
	return string(s)
}
