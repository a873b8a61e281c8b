package console

// Control codes recognized by the line editor.
const (
	CtrlD = 'D' - '@' // end of file
	CtrlH = 'H' - '@' // backspace
	CtrlP = 'P' - '@' // dump task list
	CtrlU = 'U' - '@' // kill line
	Del   = 0x7f      // delete key, treated as backspace
)

// backspace is the echo sentinel for a visual erase. It sits outside the
// byte range so it can never collide with input.
const backspace = 0x100

// putc echoes one character to the transmit channel. A backspace becomes
// the three-byte erase sequence so the terminal overwrites the character.
// Caller holds the device lock.
func (d *Device) putc(c int) {
	if c == backspace {
		d.tx.SendSync('\b')
		d.tx.SendSync(' ')
		d.tx.SendSync('\b')
		d.rec.AddEchoBytes(3)
		return
	}
	d.tx.SendSync(byte(c))
	d.rec.AddEchoBytes(1)
}
