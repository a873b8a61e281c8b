package console

import "github.com/GriffinCanCode/ConsoleKit/internal/memory"

// Write copies n bytes from src to the transmit channel, one at a time,
// using the best-effort async send. Writes never touch input state, so no
// lock is taken. A failed copy stops the transfer and returns the count
// already transmitted together with the copy error.
func (d *Device) Write(src memory.Source, n int) (int, error) {
	for i := 0; i < n; i++ {
		c, err := src.ReadByteAt(i)
		if err != nil {
			return i, err
		}
		d.tx.SendAsync(c)
	}
	return n, nil
}
