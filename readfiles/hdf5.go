package readfiles

import (
	"fmt"
	"os"

	"gonum.org/v1/hdf5"

	"github.com/notargets/fastsf/utils"
)

// CompatibilityError reports an input file whose dataset is missing or does
// not match the configured grid. The command layer prints the input
// checklist when it sees one.
type CompatibilityError struct {
	Msg string
	Err error
}

func (e *CompatibilityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *CompatibilityError) Unwrap() error { return e.Err }

// Checklist enumerates the input file requirements, shown when a read fails
// with a CompatibilityError.
const Checklist = `Error: Please check the following

a. 'in' folder contains the input files

b. Input files should be of the names:
	Case Vector:
		Case 2D: U.V1r.h5, U.V3r.h5
		Case 3D: U.V1r.h5, U.V2r.h5, U.V3r.h5
	Case Scalar:
		T.Fr.h5

c. Grid size of the data should be compatible with specified Nx, Ny, Nz
	Case 2D: Nx, Nz
	Case 3D: Nx, Ny, Nz

d. Dataset name should be same as the file name without the extension

Please refer to Readme for details
`

// openDataset opens fold/file.h5 and the dataset named file, checking the
// dataset rank and extents against want.
func openDataset(fold, file string, want []int) (f *hdf5.File, dset *hdf5.Dataset, err error) {
	path := fold + file + ".h5"
	if _, err = os.Stat(path); err != nil {
		return nil, nil, &CompatibilityError{Msg: "desired file does not exist", Err: err}
	}
	if f, err = hdf5.OpenFile(path, hdf5.F_ACC_RDONLY); err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	if dset, err = f.OpenDataset(file); err != nil {
		f.Close()
		return nil, nil, &CompatibilityError{Msg: fmt.Sprintf("dataset %s missing in %s", file, path), Err: err}
	}
	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		dset.Close()
		f.Close()
		return nil, nil, fmt.Errorf("reading extents of %s: %w", path, err)
	}
	if len(dims) != len(want) {
		dset.Close()
		f.Close()
		return nil, nil, &CompatibilityError{Msg: "incompatible dimension data"}
	}
	for i, w := range want {
		if int(dims[i]) != w {
			dset.Close()
			f.Close()
			return nil, nil, &CompatibilityError{Msg: "incompatible grid size"}
		}
	}
	return
}

// Read2D reads the (nx, nz) field stored in fold/file.h5.
func Read2D(fold, file string, nx, nz int) (a *utils.Array2D, err error) {
	f, dset, err := openDataset(fold, file, []int{nx, nz})
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer dset.Close()
	a = utils.NewArray2D(nx, nz)
	if err = dset.Read(&a.DataP); err != nil {
		return nil, fmt.Errorf("reading %s%s.h5: %w", fold, file, err)
	}
	return
}

// Read3D reads the (nx, ny, nz) field stored in fold/file.h5.
func Read3D(fold, file string, nx, ny, nz int) (a *utils.Array3D, err error) {
	f, dset, err := openDataset(fold, file, []int{nx, ny, nz})
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer dset.Close()
	a = utils.NewArray3D(nx, ny, nz)
	if err = dset.Read(&a.DataP); err != nil {
		return nil, fmt.Errorf("reading %s%s.h5: %w", fold, file, err)
	}
	return
}

// Write2D stores a as fold/file.h5 with a single dataset named file.
func Write2D(fold, file string, a *utils.Array2D) (err error) {
	f, err := hdf5.CreateFile(fold+file+".h5", hdf5.F_ACC_TRUNC)
	if err != nil {
		return fmt.Errorf("creating %s%s.h5: %w", fold, file, err)
	}
	defer f.Close()
	dims := []uint{uint(a.Nr), uint(a.Nc)}
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("creating dataspace for %s: %w", file, err)
	}
	defer space.Close()
	dset, err := f.CreateDataset(file, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return fmt.Errorf("creating dataset %s: %w", file, err)
	}
	defer dset.Close()
	if err = dset.Write(&a.DataP); err != nil {
		return fmt.Errorf("writing %s%s.h5: %w", fold, file, err)
	}
	return
}

// Write3D stores a as fold/file.h5 with a single dataset named file.
func Write3D(fold, file string, a *utils.Array3D) (err error) {
	f, err := hdf5.CreateFile(fold+file+".h5", hdf5.F_ACC_TRUNC)
	if err != nil {
		return fmt.Errorf("creating %s%s.h5: %w", fold, file, err)
	}
	defer f.Close()
	dims := []uint{uint(a.Ni), uint(a.Nj), uint(a.Nk)}
	space, err := hdf5.CreateSimpleDataspace(dims, nil)
	if err != nil {
		return fmt.Errorf("creating dataspace for %s: %w", file, err)
	}
	defer space.Close()
	dset, err := f.CreateDataset(file, hdf5.T_NATIVE_DOUBLE, space)
	if err != nil {
		return fmt.Errorf("creating dataset %s: %w", file, err)
	}
	defer dset.Close()
	if err = dset.Write(&a.DataP); err != nil {
		return fmt.Errorf("writing %s%s.h5: %w", fold, file, err)
	}
	return
}
