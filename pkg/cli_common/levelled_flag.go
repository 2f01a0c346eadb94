package clicommon

import "strconv"

// LevelledFlag is a boolean flag that counts: each "-v" raises the level by one, an
// explicit "--verbose=false" lowers it, and "--verbose=N" sets it.
type LevelledFlag int

func (f *LevelledFlag) Set(s string) error {
	if v, err := strconv.ParseBool(s); err == nil {
		switch {
		case v:
			*f++
		case *f > 0:
			*f--
		}
		return nil
	} else if l, intErr := strconv.ParseInt(s, 10, 64); intErr == nil {
		*f = LevelledFlag(l)
		return nil
	} else {
		return err
	}
}

func (f *LevelledFlag) Type() string {
	return "levelled_flag"
}

func (f *LevelledFlag) String() string {
	return strconv.Itoa(int(*f))
}
