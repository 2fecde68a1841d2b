package ibmi

// ParameterType tags a ProgramCallParameter with its calling
// convention (spec §3). An unrecognized value is coerced to
// InputOutput by NewProgramCallParameter; a ProgramCallParameter built
// as a struct literal, or whose Type field is assigned directly, keeps
// the value it is given.
type ParameterType uint16

const (
	ParameterNull        ParameterType = 255
	ParameterInput       ParameterType = 11
	ParameterOutput      ParameterType = 12
	ParameterInputOutput ParameterType = 13
)

func (t ParameterType) normalize() ParameterType {
	switch t {
	case ParameterNull, ParameterInput, ParameterOutput, ParameterInputOutput:
		return t
	default:
		return ParameterInputOutput
	}
}

// ProgramCallParameter is one parameter of a CallProgram invocation.
// Payload may be empty for a pure-output parameter.
type ProgramCallParameter struct {
	Type              ParameterType
	Payload           []byte
	DeclaredMaxLength int
}

// NewProgramCallParameter constructs a parameter, coercing an
// unrecognized paramType to InputOutput.
func NewProgramCallParameter(paramType ParameterType, payload []byte, declaredMaxLength int) ProgramCallParameter {
	return ProgramCallParameter{
		Type:              paramType.normalize(),
		Payload:           payload,
		DeclaredMaxLength: declaredMaxLength,
	}
}

// EffectiveMaxLength applies the per-type invariant of spec §3.
func (p ProgramCallParameter) EffectiveMaxLength() int {
	switch p.Type {
	case ParameterNull:
		return 0
	case ParameterOutput:
		return p.DeclaredMaxLength
	default: // Input, InputOutput
		return maxInt(p.DeclaredMaxLength, len(p.Payload))
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// ProgramCallParameters is the ordered, fixed-length parameter list of
// a CallProgram invocation.
type ProgramCallParameters []ProgramCallParameter

// NewProgramCallParameters wraps params as a fixed-length ordered list.
func NewProgramCallParameters(params ...ProgramCallParameter) ProgramCallParameters {
	return ProgramCallParameters(params)
}

// PassType selects whether a ServiceProgramCallParameter is passed by
// value or by reference. An unrecognized value is coerced to
// ByReference by NewServiceProgramCallParameter.
type PassType uint32

const (
	PassByValue     PassType = 1
	PassByReference PassType = 2
)

func (t PassType) normalize() PassType {
	switch t {
	case PassByValue, PassByReference:
		return t
	default:
		return PassByReference
	}
}

// ServiceProgramCallParameter is one parameter of a
// CallServiceProgram invocation.
type ServiceProgramCallParameter struct {
	PassType          PassType
	Payload           []byte
	DeclaredMaxLength int
}

// NewServiceProgramCallParameter constructs a parameter, coercing an
// unrecognized passType to ByReference.
func NewServiceProgramCallParameter(passType PassType, payload []byte, declaredMaxLength int) ServiceProgramCallParameter {
	return ServiceProgramCallParameter{
		PassType:          passType.normalize(),
		Payload:           payload,
		DeclaredMaxLength: declaredMaxLength,
	}
}

// EffectiveMaxLength applies spec §3's max(declared, payload length)
// invariant.
func (p ServiceProgramCallParameter) EffectiveMaxLength() int {
	return maxInt(p.DeclaredMaxLength, len(p.Payload))
}

// ReturnValueFormat selects how the QZRUCLSP trampoline's receiver
// variable (parameter 6, spec §4.6) is sized and decoded.
type ReturnValueFormat uint32

const (
	ReturnNone         ReturnValueFormat = 0
	ReturnInteger      ReturnValueFormat = 1
	ReturnPointer      ReturnValueFormat = 2
	ReturnIntegerErrno ReturnValueFormat = 3
)

// maxServiceProgramParameters is the hard limit spec §4.6 imposes on
// the QZRUCLSP trampoline's per-call parameter count.
const maxServiceProgramParameters = 7

// ServiceProgramCallParameters is the ordered parameter list (at most
// 7) of a CallServiceProgram invocation, together with its
// return-value format selection and the fields the call populates on
// return.
type ServiceProgramCallParameters struct {
	Params               []ServiceProgramCallParameter
	ReturnValueFormat    ReturnValueFormat
	AlignReceiver16Bytes bool

	// Populated by CallServiceProgram on return.
	ResultInteger uint32
	ResultErrno   uint32
	ResultPointer [16]byte
}

// NewServiceProgramCallParameters validates the parameter count (spec
// §7 Configuration error: "service program parameters > 7") before
// constructing the list.
func NewServiceProgramCallParameters(format ReturnValueFormat, alignReceiver16Bytes bool, params ...ServiceProgramCallParameter) (*ServiceProgramCallParameters, error) {
	if len(params) > maxServiceProgramParameters {
		return nil, &ConfigError{
			Field:  "params",
			Reason: "service program call accepts at most 7 parameters",
		}
	}
	return &ServiceProgramCallParameters{
		Params:               params,
		ReturnValueFormat:    format,
		AlignReceiver16Bytes: alignReceiver16Bytes,
	}, nil
}

// CallMessage is one diagnostic or informational message the server
// returned from a CallCommand/CallProgram/CallServiceProgram
// invocation (spec §4.6).
type CallMessage struct {
	ID               string
	Type             uint16
	Severity         uint16
	SubstitutionText string
	MessageText      string
	HelpText         string
}

// CallMessages is the ordered message list a call populates.
type CallMessages []CallMessage
