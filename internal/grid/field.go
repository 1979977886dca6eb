package grid

import "fmt"

// Field is a padded 2D array of cell values stored row by row.
type Field struct {
	Width  int
	Height int
	Data   []float32
}

// NewField allocates a zeroed field of the given padded extent.
func NewField(width, height int) *Field {
	return &Field{Width: width, Height: height, Data: make([]float32, width*height)}
}

// FieldFrom wraps a copy of data, which must hold width*height values.
func FieldFrom(width, height int, data []float32) (*Field, error) {
	if len(data) != width*height {
		return nil, fmt.Errorf("field data has %d values, want %dx%d=%d", len(data), width, height, width*height)
	}
	f := NewField(width, height)
	copy(f.Data, data)
	return f, nil
}

// At returns the value at column x, row y.
func (f *Field) At(x, y int) float32 {
	return f.Data[y*f.Width+x]
}

// Set writes the value at column x, row y.
func (f *Field) Set(x, y int, value float32) {
	f.Data[y*f.Width+x] = value
}

// Row returns the backing slice of row y.
func (f *Field) Row(y int) []float32 {
	base := y * f.Width
	return f.Data[base : base+f.Width]
}

// Clone returns a deep copy of the field.
func (f *Field) Clone() *Field {
	c := NewField(f.Width, f.Height)
	copy(c.Data, f.Data)
	return c
}

// Crop copies the sub-rectangle starting at (x0, y0) with the given size.
func (f *Field) Crop(x0, y0, width, height int) *Field {
	c := NewField(width, height)
	for y := 0; y < height; y++ {
		src := f.Data[(y0+y)*f.Width+x0 : (y0+y)*f.Width+x0+width]
		copy(c.Data[y*width:(y+1)*width], src)
	}
	return c
}

// Fill sets every cell, including halo cells, to value.
func (f *Field) Fill(value float32) {
	for i := range f.Data {
		f.Data[i] = value
	}
}
