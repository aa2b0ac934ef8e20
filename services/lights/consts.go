package lights

import "ledcore-go/bus"

// Topic tokens.
const (
	TokLights  = "lights"
	TokControl = "control"
	TokValue   = "value"
	TokInfo    = "info"
	TokStatus  = "status"
	TokState   = "state"

	TokConfig   = "config"
	TokLighting = "lighting"
	TokPower    = "power"
	TokPSU      = "psu"
	TokThermal  = "thermal"
	TokRamp     = "ramp"

	SourceElement = "element"
	SourceSurface = "surface"
)

// Control verbs on lights/<name>/control/<verb>.
const (
	CtrlSet      = "set"
	CtrlOff      = "off"
	CtrlOn       = "on"
	CtrlToggle   = "toggle"
	CtrlPreset   = "preset"
	CtrlGet      = "get"
	CtrlActivity = "activity"
)

var (
	topicConfig  = bus.Topic{TokConfig, TokLighting}
	topicCtrl    = bus.Topic{TokLights, "+", TokControl, "+"}
	topicPSU     = bus.Topic{TokPower, TokPSU, TokValue}
	topicThermal = bus.Topic{TokThermal, "+", TokRamp}
	topicState   = bus.Topic{TokLights, TokState}
)

// ControlTopic addresses verb on channel name.
func ControlTopic(name, verb string) bus.Topic {
	return bus.Topic{TokLights, name, TokControl, verb}
}

func ValueTopic(name string) bus.Topic  { return bus.Topic{TokLights, name, TokValue} }
func InfoTopic(name string) bus.Topic   { return bus.Topic{TokLights, name, TokInfo} }
func StatusTopic(name string) bus.Topic { return bus.Topic{TokLights, name, TokStatus} }

// RampTopic is where heater telemetry for source is published.
func RampTopic(source string) bus.Topic { return bus.Topic{TokThermal, source, TokRamp} }

// PSUTopic carries the retained power-supply state.
func PSUTopic() bus.Topic { return topicPSU }
