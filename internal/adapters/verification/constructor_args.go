package verification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// EncodeConstructorArgs ABI-encodes stringified constructor arguments against
// the constructor of a contract ABI. The result is hex without the 0x prefix,
// empty when the constructor takes no arguments.
func EncodeConstructorArgs(contractABI json.RawMessage, args []string) (string, error) {
	if len(contractABI) == 0 {
		if len(args) == 0 {
			return "", nil
		}
		return "", fmt.Errorf("cannot encode %d constructor arguments without an ABI", len(args))
	}

	parsed, err := abi.JSON(bytes.NewReader(contractABI))
	if err != nil {
		return "", fmt.Errorf("failed to parse ABI: %w", err)
	}

	inputs := parsed.Constructor.Inputs
	if len(inputs) != len(args) {
		return "", fmt.Errorf("constructor takes %d arguments, got %d", len(inputs), len(args))
	}
	if len(inputs) == 0 {
		return "", nil
	}

	values := make([]interface{}, len(args))
	for i, input := range inputs {
		value, err := convertArg(input.Type, args[i])
		if err != nil {
			return "", fmt.Errorf("argument %d (%s %s): %w", i, input.Type.String(), input.Name, err)
		}
		values[i] = value.Interface()
	}

	encoded, err := inputs.Pack(values...)
	if err != nil {
		return "", fmt.Errorf("failed to encode constructor arguments: %w", err)
	}
	return common.Bytes2Hex(encoded), nil
}

func convertArg(t abi.Type, raw string) (reflect.Value, error) {
	raw = strings.TrimSpace(raw)

	switch t.T {
	case abi.AddressTy:
		if !common.IsHexAddress(raw) {
			return reflect.Value{}, fmt.Errorf("invalid address %q", raw)
		}
		return reflect.ValueOf(common.HexToAddress(raw)), nil

	case abi.BoolTy:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bool %q", raw)
		}
		return reflect.ValueOf(b), nil

	case abi.StringTy:
		return reflect.ValueOf(raw), nil

	case abi.IntTy, abi.UintTy:
		return convertInteger(t, raw)

	case abi.BytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bytes %q: %w", raw, err)
		}
		return reflect.ValueOf(b), nil

	case abi.FixedBytesTy:
		b, err := hexutil.Decode(raw)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("invalid bytes%d %q: %w", t.Size, raw, err)
		}
		if len(b) != t.Size {
			return reflect.Value{}, fmt.Errorf("bytes%d needs %d bytes, got %d", t.Size, t.Size, len(b))
		}
		v := reflect.New(t.GetType()).Elem()
		reflect.Copy(v, reflect.ValueOf(b))
		return v, nil

	case abi.SliceTy, abi.ArrayTy:
		var elems []json.RawMessage
		if err := json.Unmarshal([]byte(raw), &elems); err != nil {
			return reflect.Value{}, fmt.Errorf("expected a JSON array, got %q", raw)
		}
		if t.T == abi.ArrayTy && len(elems) != t.Size {
			return reflect.Value{}, fmt.Errorf("array needs %d elements, got %d", t.Size, len(elems))
		}

		var v reflect.Value
		if t.T == abi.ArrayTy {
			v = reflect.New(t.GetType()).Elem()
		} else {
			v = reflect.MakeSlice(t.GetType(), len(elems), len(elems))
		}
		for i, elem := range elems {
			ev, err := convertArg(*t.Elem, unquote(elem))
			if err != nil {
				return reflect.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			v.Index(i).Set(ev)
		}
		return v, nil
	}

	return reflect.Value{}, fmt.Errorf("unsupported type %s", t.String())
}

func convertInteger(t abi.Type, raw string) (reflect.Value, error) {
	n, ok := new(big.Int).SetString(raw, 0)
	if !ok {
		return reflect.Value{}, fmt.Errorf("invalid integer %q", raw)
	}
	if t.T == abi.UintTy && n.Sign() < 0 {
		return reflect.Value{}, fmt.Errorf("negative value %s for %s", raw, t.String())
	}
	bits := t.Size
	if t.T == abi.IntTy {
		bits--
	}
	if n.BitLen() > bits {
		return reflect.Value{}, fmt.Errorf("value %s overflows %s", raw, t.String())
	}

	goType := t.GetType()
	switch goType.Kind() {
	case reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return reflect.ValueOf(n.Uint64()).Convert(goType), nil
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(n.Int64()).Convert(goType), nil
	}
	return reflect.ValueOf(n), nil
}

// unquote turns a JSON string element into its value and leaves numbers and
// nested arrays as written
func unquote(elem json.RawMessage) string {
	var s string
	if err := json.Unmarshal(elem, &s); err == nil {
		return s
	}
	return string(elem)
}
