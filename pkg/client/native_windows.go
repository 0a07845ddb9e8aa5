//go:build windows

package client

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/cariandrum22/Xanthos-sub000/internal/logger"
	"github.com/cariandrum22/Xanthos-sub000/pkg/jverrors"
)

// progID is the JV-Link COM component's registered program identifier.
const progID = "JVDTLab.JVLink"

// watchEventSourceIID is the fixed source-interface identity the native
// component's connection point exposes for watch-event callbacks
// (spec.md §6.1).
const watchEventSourceIID = "{64D2D7F0-97DB-4F9B-BE1C-5B7F2B1E9A00}"

// Native drives the real JV-Link COM component via go-ole. Every method
// here is expected to run already-confined to the Apartment-Confined
// Dispatcher's single locked OS thread; on top of that, each method holds
// Native's own mutex for the duration of the call.
type Native struct {
	mu sync.Mutex

	dispatch *ole.IDispatch
	conn     *ole.Connection
}

// NewNative creates and activates the JV-Link COM component. Must be
// called from the thread that will make every subsequent call.
func NewNative() (*Native, error) {
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		return nil, jverrors.Native(jverrors.ActivationFailure(fmt.Sprintf("CoInitializeEx: %v", err)))
	}

	unknown, err := oleutil.CreateObject(progID)
	if err != nil {
		ole.CoUninitialize()
		return nil, jverrors.Native(jverrors.ActivationFailure(fmt.Sprintf("CreateObject(%s): %v", progID, err)))
	}
	dispatch, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		unknown.Release()
		ole.CoUninitialize()
		return nil, jverrors.Native(jverrors.ActivationFailure(fmt.Sprintf("QueryInterface(IDispatch): %v", err)))
	}
	unknown.Release()

	return &Native{dispatch: dispatch}, nil
}

// Release tears down the cached IDispatch and uninitialises COM on this
// thread. Call once, after the dispatcher's worker has stopped.
func (n *Native) Release() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.dispatch != nil {
		n.dispatch.Release()
		n.dispatch = nil
	}
	ole.CoUninitialize()
}

func (n *Native) call(method string, params ...interface{}) (*ole.VARIANT, error) {
	result, err := oleutil.CallMethod(n.dispatch, method, params...)
	if err != nil {
		return nil, jverrors.Native(jverrors.UnexpectedFailure(fmt.Sprintf("%s: %v", method, err)))
	}
	return result, nil
}

func (n *Native) mapCode(method string, code int32) error {
	switch code {
	case 0:
		return nil
	case -1, -3:
		// File boundary / download pending are control signals, not
		// errors — callers inspect the raw code via Read/Gets directly
		// rather than through this helper.
		return nil
	default:
		logger.Warn("native: call returned failure code", "method", method, "code", code)
		return jverrors.Native(jverrors.CommunicationFailure(jverrors.NativeCode(code)))
	}
}

func (n *Native) Init(ctx context.Context, sid string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVInit", sid)
	if err != nil {
		return err
	}
	return n.mapCode("JVInit", result.Value().(int32))
}

func (n *Native) Open(ctx context.Context, spec, fromKey string, option int) (OpenResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var readCount, downloadCount int32
	var lastTimestamp string
	result, err := n.call("JVOpen", spec, fromKey, option, &readCount, &downloadCount, &lastTimestamp)
	if err != nil {
		return OpenResult{}, err
	}
	code := result.Value().(int32)
	if err := n.mapCode("JVOpen", code); err != nil {
		return OpenResult{}, err
	}
	return OpenResult{
		HasData:             code >= 0,
		FileCount:           int(readCount),
		PendingDownloadCount: int(downloadCount),
		LastTimestamp:        lastTimestamp,
	}, nil
}

func (n *Native) OpenRealtime(ctx context.Context, spec, key string) (OpenResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVRTOpen", spec, key)
	if err != nil {
		return OpenResult{}, err
	}
	code := result.Value().(int32)
	if err := n.mapCode("JVRTOpen", code); err != nil {
		return OpenResult{}, err
	}
	return OpenResult{HasData: code == 0}, nil
}

func (n *Native) Read(ctx context.Context) (ReadOutcome, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var buf [256 * 1024]byte
	var filename string
	result, err := n.call("JVRead", &buf, len(buf), &filename)
	if err != nil {
		return ReadOutcome{}, err
	}
	return outcomeFromCode(result.Value().(int32), buf[:], filename)
}

func (n *Native) Gets(ctx context.Context, maxSize int) (ReadOutcome, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	buf := make([]byte, maxSize)
	var filename string
	result, err := n.call("JVGets", &buf, maxSize, &filename)
	if err != nil {
		return ReadOutcome{}, err
	}
	return outcomeFromCode(result.Value().(int32), buf, filename)
}

func outcomeFromCode(code int32, buf []byte, filename string) (ReadOutcome, error) {
	switch code {
	case -1:
		return ReadOutcome{Kind: ReadOutcomeFileBoundary}, nil
	case -3:
		return ReadOutcome{Kind: ReadOutcomeDownloadPending}, nil
	case 0:
		return ReadOutcome{Kind: ReadOutcomeEndOfStream}, nil
	default:
		if code < 0 {
			return ReadOutcome{}, jverrors.Native(jverrors.CommunicationFailure(jverrors.NativeCode(code)))
		}
		cp := make([]byte, code)
		copy(cp, buf[:code])
		return ReadOutcome{Kind: ReadOutcomeRecord, Buffer: cp, Filename: filename}, nil
	}
}

func (n *Native) Skip(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVSkip")
	if err != nil {
		return err
	}
	return n.mapCode("JVSkip", result.Value().(int32))
}

func (n *Native) Cancel(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := n.call("JVCancel")
	return err
}

func (n *Native) Close(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := n.call("JVClose")
	return err
}

func (n *Native) Status(ctx context.Context) (int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVStatus")
	if err != nil {
		return 0, err
	}
	return int(result.Value().(int32)), nil
}

func (n *Native) DeleteFile(ctx context.Context, name string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := n.call("JVFukuDel", name)
	return err
}

func (n *Native) WatchEvent(ctx context.Context, callback func(key string)) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	conn, err := ole.NewConnectPoint(n.dispatch, watchEventSourceIID)
	if err != nil {
		return jverrors.Native(jverrors.ActivationFailure(fmt.Sprintf("NewConnectPoint: %v", err)))
	}
	n.conn = conn
	conn.OnEvent("OnJVLinkEvent", func(v []interface{}) {
		if len(v) == 0 {
			return
		}
		if key, ok := v[0].(string); ok {
			callback(key)
		}
	})
	return nil
}

func (n *Native) WatchEventClose(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.conn != nil {
		n.conn.Close()
		n.conn = nil
	}
	return nil
}

func (n *Native) GetProperties(ctx context.Context) (Properties, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var props Properties
	if v, err := oleutil.GetProperty(n.dispatch, "SaveFlag"); err == nil {
		props.SaveFlag = v.Value().(bool)
	}
	if v, err := oleutil.GetProperty(n.dispatch, "SavePath"); err == nil {
		props.SavePath, _ = v.Value().(string)
	}
	if v, err := oleutil.GetProperty(n.dispatch, "ServiceKey"); err == nil {
		props.ServiceKey, _ = v.Value().(string)
	}
	if v, err := oleutil.GetProperty(n.dispatch, "PayoffDialogSuppressed"); err == nil {
		props.PayoffDialogSuppressed, _ = v.Value().(bool)
	}
	if v, err := oleutil.GetProperty(n.dispatch, "Version"); err == nil {
		props.Version, _ = v.Value().(string)
	}
	return props, nil
}

func (n *Native) SetSaveFlag(ctx context.Context, v bool) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := oleutil.PutProperty(n.dispatch, "SaveFlag", v)
	return err
}

func (n *Native) SetSavePath(ctx context.Context, v string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := oleutil.PutProperty(n.dispatch, "SavePath", v)
	return err
}

func (n *Native) SetServiceKey(ctx context.Context, v string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := oleutil.PutProperty(n.dispatch, "ServiceKey", v)
	return err
}

// SetParentWindowHandle is set-only on the native backend (spec.md
// §4.4's property table); the Contract interface does not expose it
// since the Stub backend has no window to own.
func (n *Native) SetParentWindowHandle(ctx context.Context, hwnd uintptr) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, err := oleutil.PutProperty(n.dispatch, "ParentHWnd", int32(hwnd))
	return err
}

func (n *Native) FetchCourseDiagram(ctx context.Context, raceKey string) ([]byte, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVCourseFile2", raceKey)
	if err != nil {
		return nil, err
	}
	path, _ := result.Value().(string)
	return []byte(path), nil
}

func (n *Native) FetchSilksBitmap(ctx context.Context, horseId string) ([]byte, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVKishuchakuFile", horseId)
	if err != nil {
		return nil, err
	}
	path, _ := result.Value().(string)
	return []byte(path), nil
}

func (n *Native) CheckWorkoutVideo(ctx context.Context, horseId string) (bool, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVMVCheck", horseId)
	if err != nil {
		return false, err
	}
	return result.Value().(int32) > 0, nil
}

func (n *Native) OpenWorkoutVideo(ctx context.Context, horseId string) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	result, err := n.call("JVMVOpen", horseId)
	if err != nil {
		return "", err
	}
	path, _ := result.Value().(string)
	return path, nil
}

var _ Contract = (*Native)(nil)
