package protocol

import (
	"fmt"
	"strings"
)

// ArgKind tags a FrameArg.
type ArgKind uint8

const (
	ArgNone ArgKind = iota
	ArgPlayer
	ArgRole
	ArgAction
)

func (k ArgKind) String() string {
	switch k {
	case ArgNone:
		return "none"
	case ArgPlayer:
		return "player"
	case ArgRole:
		return "role"
	case ArgAction:
		return "action"
	default:
		return fmt.Sprintf("ArgKind(%d)", k)
	}
}

func (k ArgKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// FrameArg is one argument of a stack frame. Only the field matching
// Kind is meaningful.
type FrameArg struct {
	Kind   ArgKind `json:"kind" yaml:"kind"`
	Player int     `json:"player,omitempty" yaml:"player,omitempty"`
	Role   Role    `json:"role,omitempty" yaml:"role,omitempty"`
	Action Action  `json:"action,omitempty" yaml:"action,omitempty"`
}

func NoArg() FrameArg {
	return FrameArg{Kind: ArgNone}
}

// PlayerArg refers to a player by index into Snapshot.Players.
func PlayerArg(index int) FrameArg {
	return FrameArg{Kind: ArgPlayer, Player: index}
}

func RoleArg(role Role) FrameArg {
	return FrameArg{Kind: ArgRole, Role: role}
}

func ActionArg(action Action) FrameArg {
	return FrameArg{Kind: ArgAction, Action: action}
}

func (a FrameArg) String() string {
	switch a.Kind {
	case ArgNone:
		return "None"
	case ArgPlayer:
		return fmt.Sprintf("player#%d", a.Player)
	case ArgRole:
		return a.Role.String()
	case ArgAction:
		return a.Action.String()
	default:
		return a.Kind.String()
	}
}

// Argument bytes are tagged by range:
//
//	0x00         None
//	0x10..0x1F   player index + 0x10
//	0x20..0x2F   role (canonical 0..5) + 0x20
//	0x30..0xFF   action code + 0x30
//
// 0x01..0x0F belong to no range and are rejected.
const (
	argNoneByte   byte = 0x00
	argPlayerBase byte = 0x10
	argRoleBase   byte = 0x20
	argActionBase byte = 0x30
)

// decodeFrameArg returns the decoded argument, or the table and index
// that failed the lookup.
func decodeFrameArg(b byte, players int) (FrameArg, string, int) {
	switch {
	case b == argNoneByte:
		return NoArg(), "", 0
	case b >= argPlayerBase && b < argRoleBase:
		index := int(b - argPlayerBase)
		if index >= players {
			return FrameArg{}, TablePlayer, index
		}
		return PlayerArg(index), "", 0
	case b >= argRoleBase && b < argActionBase:
		role, ok := roleFromWire(b - argRoleBase)
		if !ok {
			return FrameArg{}, TableRole, int(b - argRoleBase)
		}
		return RoleArg(role), "", 0
	case b >= argActionBase:
		return ActionArg(Action(b - argActionBase)), "", 0
	default:
		return FrameArg{}, TableFrameArg, int(b)
	}
}

func encodeFrameArg(a FrameArg) (byte, error) {
	switch a.Kind {
	case ArgNone:
		return argNoneByte, nil
	case ArgPlayer:
		if a.Player < 0 || a.Player >= int(argRoleBase-argPlayerBase) {
			return 0, invalidValue("player argument %d", a.Player)
		}
		return argPlayerBase + byte(a.Player), nil
	case ArgRole:
		role, ok := roleToWire(a.Role)
		if !ok || a.Role == RoleNone {
			return 0, invalidValue("role argument %s", a.Role)
		}
		return argRoleBase + role, nil
	case ArgAction:
		if a.Action > 0xFF-Action(argActionBase) {
			return 0, invalidValue("action argument %d", a.Action)
		}
		return argActionBase + byte(a.Action), nil
	default:
		return 0, invalidValue("argument kind %s", a.Kind)
	}
}

// Frame is one entry of the server's call stack: a routine that is
// waiting to run, or has run and waits for its callees to finish.
type Frame struct {
	Function Function   `json:"function" yaml:"function"`
	Executed bool       `json:"executed" yaml:"executed"`
	Args     []FrameArg `json:"args" yaml:"args"`
}

func (f Frame) String() string {
	args := make([]string, len(f.Args))
	for i, arg := range f.Args {
		args[i] = arg.String()
	}
	s := fmt.Sprintf("%s(%s)", f.Function, strings.Join(args, ", "))
	if f.Executed {
		s += " [executed]"
	}
	return s
}

// Player returns the index of the first player argument, or -1.
func (f Frame) Player() int {
	for _, arg := range f.Args {
		if arg.Kind == ArgPlayer {
			return arg.Player
		}
	}
	return -1
}

// Role returns the first role argument, or RoleNone.
func (f Frame) Role() Role {
	for _, arg := range f.Args {
		if arg.Kind == ArgRole {
			return arg.Role
		}
	}
	return RoleNone
}

const frameHeadLength = 2 // function, executed

// ReadFrame decodes one frame record:
//
//	<length> <function> <executed> <arg1> ... <argN>
//
// A zero length record means "no frame" and yields nil. players is the
// number of decoded players; player arguments must refer to one of them.
func ReadFrame(c *Cursor, players int) (*Frame, error) {
	start := c.Offset()
	length, err := c.U8()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, nil
	}
	if length < frameHeadLength {
		return nil, newDecodeError(ErrInvalidRecordLength, start,
			"frame length %d is shorter than its %d byte head", length, frameHeadLength)
	}

	body, err := c.Bytes(int(length))
	if err != nil {
		return nil, err
	}

	function, ok := functionFromWire(body[0])
	if !ok {
		return nil, enumError(TableFunction, int(body[0]), start+1)
	}

	frame := &Frame{
		Function: function,
		Executed: body[1] != 0,
		Args:     make([]FrameArg, 0, int(length)-frameHeadLength),
	}

	for i, b := range body[frameHeadLength:] {
		arg, table, index := decodeFrameArg(b, players)
		if table != "" {
			return nil, enumError(table, index, start+1+frameHeadLength+i)
		}
		frame.Args = append(frame.Args, arg)
	}

	return frame, nil
}

// WriteFrame encodes a frame. A nil frame is written as a zero length record.
func WriteFrame(w *Writer, f *Frame) error {
	if f == nil {
		w.U8(0)
		return nil
	}
	if !f.Function.valid() {
		return invalidValue("function %s", f.Function)
	}
	length := frameHeadLength + len(f.Args)
	if length > 0xFF {
		return invalidValue("frame has %d arguments", len(f.Args))
	}

	args := make([]byte, len(f.Args))
	for i, arg := range f.Args {
		b, err := encodeFrameArg(arg)
		if err != nil {
			return err
		}
		args[i] = b
	}

	w.U8(uint8(length))
	w.U8(uint8(f.Function))
	w.Bool(f.Executed)
	w.Write(args)
	return nil
}
