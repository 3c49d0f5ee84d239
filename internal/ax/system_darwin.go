//go:build darwin && cgo

package ax

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework ApplicationServices -framework AppKit

#include <ApplicationServices/ApplicationServices.h>
#import <AppKit/AppKit.h>
#include <stdlib.h>
#include <string.h>

enum {
	GM_PRESENT = 0,
	GM_ABSENT  = 1,
	GM_INVALID = 2,
};

typedef struct {
	int  enabled_state;
	bool enabled;
	int   title_state;
	char *title;
	int   char_state;
	char *cmd_char;
	int  glyph_state;
	long glyph;
	int  mods_state;
	long mods;
} gm_attrs;

typedef struct {
	pid_t pid;
	char *name;
	char *bundle_id;
	char *bundle_path;
} gm_app;

static char *gm_cfstring_dup(CFStringRef s) {
	if (s == NULL) {
		return NULL;
	}
	CFIndex length = CFStringGetLength(s);
	CFIndex max = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
	char *buf = malloc(max);
	if (buf == NULL) {
		return NULL;
	}
	if (!CFStringGetCString(s, buf, max, kCFStringEncodingUTF8)) {
		free(buf);
		return NULL;
	}
	return buf;
}

// gm_slot_state classifies one slot of a batched attribute fetch. Missing
// attributes come back as error sentinels of type kAXValueAXErrorType.
static int gm_slot_state(CFTypeRef v) {
	if (v == NULL || CFGetTypeID(v) == CFNullGetTypeID()) {
		return GM_ABSENT;
	}
	if (CFGetTypeID(v) == AXValueGetTypeID() &&
	    AXValueGetType((AXValueRef)v) == kAXValueAXErrorType) {
		AXError code = kAXErrorSuccess;
		AXValueGetValue((AXValueRef)v, kAXValueAXErrorType, &code);
		if (code == kAXErrorNoValue || code == kAXErrorAttributeUnsupported) {
			return GM_ABSENT;
		}
		return GM_INVALID;
	}
	return GM_PRESENT;
}

// gm_copy_attrs fetches the menu-relevant attribute bundle in one
// cross-process round trip. Each slot fails independently.
static void gm_copy_attrs(AXUIElementRef el, gm_attrs *out) {
	out->enabled_state = GM_INVALID;
	out->title_state   = GM_INVALID;
	out->title         = NULL;
	out->char_state    = GM_INVALID;
	out->cmd_char      = NULL;
	out->glyph_state   = GM_INVALID;
	out->mods_state    = GM_INVALID;

	const void *names[] = {
		kAXEnabledAttribute,
		kAXTitleAttribute,
		kAXMenuItemCmdCharAttribute,
		kAXMenuItemCmdGlyphAttribute,
		kAXMenuItemCmdModifiersAttribute,
	};
	CFArrayRef attrs = CFArrayCreate(kCFAllocatorDefault, names, 5, &kCFTypeArrayCallBacks);
	if (attrs == NULL) {
		return;
	}

	CFArrayRef values = NULL;
	AXError err = AXUIElementCopyMultipleAttributeValues(el, attrs, 0, &values);
	CFRelease(attrs);
	if (err != kAXErrorSuccess || values == NULL || CFArrayGetCount(values) != 5) {
		if (values != NULL) {
			CFRelease(values);
		}
		return;
	}

	CFTypeRef v = CFArrayGetValueAtIndex(values, 0);
	out->enabled_state = gm_slot_state(v);
	if (out->enabled_state == GM_PRESENT) {
		if (CFGetTypeID(v) == CFBooleanGetTypeID()) {
			out->enabled = CFBooleanGetValue((CFBooleanRef)v);
		} else {
			out->enabled_state = GM_INVALID;
		}
	}

	v = CFArrayGetValueAtIndex(values, 1);
	out->title_state = gm_slot_state(v);
	if (out->title_state == GM_PRESENT) {
		if (CFGetTypeID(v) == CFStringGetTypeID()) {
			out->title = gm_cfstring_dup((CFStringRef)v);
			if (out->title == NULL) {
				out->title_state = GM_INVALID;
			}
		} else {
			out->title_state = GM_INVALID;
		}
	}

	v = CFArrayGetValueAtIndex(values, 2);
	out->char_state = gm_slot_state(v);
	if (out->char_state == GM_PRESENT) {
		if (CFGetTypeID(v) == CFStringGetTypeID()) {
			out->cmd_char = gm_cfstring_dup((CFStringRef)v);
			if (out->cmd_char == NULL) {
				out->char_state = GM_INVALID;
			}
		} else {
			out->char_state = GM_INVALID;
		}
	}

	v = CFArrayGetValueAtIndex(values, 3);
	out->glyph_state = gm_slot_state(v);
	if (out->glyph_state == GM_PRESENT) {
		if (CFGetTypeID(v) != CFNumberGetTypeID() ||
		    !CFNumberGetValue((CFNumberRef)v, kCFNumberLongType, &out->glyph)) {
			out->glyph_state = GM_INVALID;
		}
	}

	v = CFArrayGetValueAtIndex(values, 4);
	out->mods_state = gm_slot_state(v);
	if (out->mods_state == GM_PRESENT) {
		if (CFGetTypeID(v) != CFNumberGetTypeID() ||
		    !CFNumberGetValue((CFNumberRef)v, kCFNumberLongType, &out->mods)) {
			out->mods_state = GM_INVALID;
		}
	}

	CFRelease(values);
}

static CFArrayRef gm_copy_children(AXUIElementRef el, int *state) {
	CFTypeRef children = NULL;
	AXError err = AXUIElementCopyAttributeValue(el, kAXChildrenAttribute, &children);
	if (err == kAXErrorNoValue || err == kAXErrorAttributeUnsupported) {
		*state = GM_ABSENT;
		return NULL;
	}
	if (err != kAXErrorSuccess || children == NULL) {
		*state = GM_INVALID;
		return NULL;
	}
	if (CFGetTypeID(children) != CFArrayGetTypeID()) {
		CFRelease(children);
		*state = GM_INVALID;
		return NULL;
	}
	*state = GM_PRESENT;
	return (CFArrayRef)children;
}

static long gm_array_count(CFArrayRef arr) {
	return CFArrayGetCount(arr);
}

// gm_element_at returns a retained element, or NULL when the slot does not
// hold one.
static AXUIElementRef gm_element_at(CFArrayRef arr, long i) {
	CFTypeRef v = CFArrayGetValueAtIndex(arr, i);
	if (v == NULL || CFGetTypeID(v) != AXUIElementGetTypeID()) {
		return NULL;
	}
	return (AXUIElementRef)CFRetain(v);
}

static char *gm_string_at(CFArrayRef arr, long i) {
	CFTypeRef v = CFArrayGetValueAtIndex(arr, i);
	if (v == NULL || CFGetTypeID(v) != CFStringGetTypeID()) {
		return NULL;
	}
	return gm_cfstring_dup((CFStringRef)v);
}

static CFArrayRef gm_copy_action_names(AXUIElementRef el, int *state) {
	CFArrayRef names = NULL;
	AXError err = AXUIElementCopyActionNames(el, &names);
	if (err == kAXErrorNoValue || err == kAXErrorNotImplemented) {
		*state = GM_ABSENT;
		return NULL;
	}
	if (err != kAXErrorSuccess || names == NULL) {
		*state = GM_INVALID;
		return NULL;
	}
	*state = GM_PRESENT;
	return names;
}

static int gm_perform(AXUIElementRef el, const char *action) {
	CFStringRef name = CFStringCreateWithCString(kCFAllocatorDefault, action, kCFStringEncodingUTF8);
	if (name == NULL) {
		return kAXErrorFailure;
	}
	AXError err = AXUIElementPerformAction(el, name);
	CFRelease(name);
	return (int)err;
}

static AXUIElementRef gm_copy_menu_bar(pid_t pid, int *code) {
	AXUIElementRef app = AXUIElementCreateApplication(pid);
	if (app == NULL) {
		*code = kAXErrorFailure;
		return NULL;
	}
	CFTypeRef bar = NULL;
	AXError err = AXUIElementCopyAttributeValue(app, kAXMenuBarAttribute, &bar);
	CFRelease(app);
	if (err != kAXErrorSuccess) {
		if (bar != NULL) {
			CFRelease(bar);
		}
		*code = (int)err;
		return NULL;
	}
	if (bar == NULL || CFGetTypeID(bar) != AXUIElementGetTypeID()) {
		if (bar != NULL) {
			CFRelease(bar);
		}
		*code = kAXErrorNoValue;
		return NULL;
	}
	*code = kAXErrorSuccess;
	return (AXUIElementRef)bar;
}

static void gm_release_element(AXUIElementRef el) {
	if (el != NULL) {
		CFRelease(el);
	}
}

static void gm_release_array(CFArrayRef arr) {
	if (arr != NULL) {
		CFRelease(arr);
	}
}

static int gm_app_info(NSRunningApplication *app, gm_app *out) {
	if (app == nil) {
		return -1;
	}
	out->pid = app.processIdentifier;
	out->name = app.localizedName != nil ? strdup(app.localizedName.UTF8String) : NULL;
	out->bundle_id = app.bundleIdentifier != nil ? strdup(app.bundleIdentifier.UTF8String) : NULL;
	out->bundle_path = app.bundleURL != nil ? strdup(app.bundleURL.path.UTF8String) : NULL;
	return 0;
}

static int gm_frontmost_app(gm_app *out) {
	return gm_app_info([[NSWorkspace sharedWorkspace] frontmostApplication], out);
}

static int gm_app_for_pid(pid_t pid, gm_app *out) {
	return gm_app_info([NSRunningApplication runningApplicationWithProcessIdentifier:pid], out);
}

// gm_app_icon_path resolves the bundle's declared icon to an .icns path.
static char *gm_app_icon_path(const char *bundle_path) {
	NSString *path = [NSString stringWithUTF8String:bundle_path];
	NSBundle *bundle = [NSBundle bundleWithPath:path];
	if (bundle == nil) {
		return NULL;
	}
	NSString *icon = [bundle objectForInfoDictionaryKey:@"CFBundleIconFile"];
	if (icon == nil || icon.length == 0) {
		return NULL;
	}
	NSString *resolved = [bundle pathForResource:icon.stringByDeletingPathExtension ofType:@"icns"];
	return resolved != nil ? strdup(resolved.UTF8String) : NULL;
}

static bool gm_trusted(void) {
	return AXIsProcessTrusted();
}

static bool gm_request_trust(void) {
	const void *keys[] = { kAXTrustedCheckOptionPrompt };
	const void *values[] = { kCFBooleanTrue };
	CFDictionaryRef options = CFDictionaryCreate(kCFAllocatorDefault,
		keys,
		values,
		1,
		&kCFTypeDictionaryKeyCallBacks,
		&kCFTypeDictionaryValueCallBacks);
	bool trusted = AXIsProcessTrustedWithOptions(options);
	if (options != NULL) {
		CFRelease(options);
	}
	return trusted;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync/atomic"
	"unsafe"
)

// Trusted reports whether the process may read other applications'
// accessibility data.
func Trusted() bool {
	return bool(C.gm_trusted())
}

// RequestTrust asks the OS to show its accessibility permission prompt and
// reports the current trust state. The prompt appears at most once per
// process registration; later calls only report.
func RequestTrust() bool {
	return bool(C.gm_request_trust())
}

// System reads frontmost-application state through the macOS accessibility
// API. MenuBar and the handles it leads to must be used on the dispatcher
// thread; the application lookups are safe from any goroutine.
type System struct {
	apps *AppCache
}

// NewSystem returns a System with an empty application-metadata cache.
func NewSystem() *System {
	return &System{apps: NewAppCache()}
}

// Frontmost identifies the application currently receiving input focus.
func (s *System) Frontmost() (AppInfo, error) {
	var raw C.gm_app
	if C.gm_frontmost_app(&raw) != 0 {
		return AppInfo{}, errors.New("ax: no frontmost application")
	}
	return s.appInfo(&raw), nil
}

// AppFor resolves application metadata for an arbitrary pid.
func (s *System) AppFor(pid int32) (AppInfo, error) {
	var raw C.gm_app
	if C.gm_app_for_pid(C.pid_t(pid), &raw) != 0 {
		return AppInfo{}, fmt.Errorf("ax: no running application with pid %d", pid)
	}
	return s.appInfo(&raw), nil
}

func (s *System) appInfo(raw *C.gm_app) AppInfo {
	defer func() {
		C.free(unsafe.Pointer(raw.name))
		C.free(unsafe.Pointer(raw.bundle_id))
		C.free(unsafe.Pointer(raw.bundle_path))
	}()
	info := AppInfo{
		PID:      int32(raw.pid),
		Name:     goString(raw.name),
		BundleID: goString(raw.bundle_id),
	}
	if cached, ok := s.apps.Get(info.PID); ok {
		if cached.BundleID == info.BundleID {
			return cached
		}
		// The pid was reused by a different bundle.
		s.apps.Drop(info.PID)
	}
	info.Icon = iconPath(goString(raw.bundle_path))
	s.apps.Put(info)
	return info
}

// iconPath resolves the application icon file, the expensive part of
// metadata lookup. Results are cached per pid by the caller.
func iconPath(bundlePath string) string {
	if bundlePath == "" {
		return ""
	}
	cpath := C.CString(bundlePath)
	defer C.free(unsafe.Pointer(cpath))
	p := C.gm_app_icon_path(cpath)
	if p == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(p))
	return C.GoString(p)
}

// MenuBar returns the root element of the application's menu bar. The
// caller owns the returned handle.
func (s *System) MenuBar(pid int32) (Node, error) {
	var code C.int
	ref := C.gm_copy_menu_bar(C.pid_t(pid), &code)
	if ref == nil {
		return nil, axError("copy menu bar", code)
	}
	return &element{ref: ref}, nil
}

// element implements Node over one retained AXUIElementRef.
type element struct {
	ref      C.AXUIElementRef
	released atomic.Bool
}

func (e *element) Attributes() Attributes {
	var raw C.gm_attrs
	C.gm_copy_attrs(e.ref, &raw)
	defer func() {
		C.free(unsafe.Pointer(raw.title))
		C.free(unsafe.Pointer(raw.cmd_char))
	}()
	return Attributes{
		Enabled:  boolAttr(raw.enabled_state, bool(raw.enabled)),
		Title:    stringAttr(raw.title_state, raw.title),
		CmdChar:  stringAttr(raw.char_state, raw.cmd_char),
		CmdGlyph: intAttr(raw.glyph_state, int(raw.glyph)),
		CmdMods:  intAttr(raw.mods_state, int(raw.mods)),
	}
}

func (e *element) Children() Attr[[]Node] {
	var state C.int
	arr := C.gm_copy_children(e.ref, &state)
	switch state {
	case C.GM_ABSENT:
		return NoValue[[]Node]()
	case C.GM_INVALID:
		return BadValue[[]Node]()
	}
	defer C.gm_release_array(arr)
	n := int(C.gm_array_count(arr))
	kids := make([]Node, 0, n)
	for i := 0; i < n; i++ {
		ref := C.gm_element_at(arr, C.long(i))
		if ref == nil {
			kids = append(kids, nil)
			continue
		}
		kids = append(kids, &element{ref: ref})
	}
	return Value(kids)
}

func (e *element) Actions() Attr[[]string] {
	var state C.int
	arr := C.gm_copy_action_names(e.ref, &state)
	switch state {
	case C.GM_ABSENT:
		return NoValue[[]string]()
	case C.GM_INVALID:
		return BadValue[[]string]()
	}
	defer C.gm_release_array(arr)
	n := int(C.gm_array_count(arr))
	names := make([]string, 0, n)
	for i := 0; i < n; i++ {
		p := C.gm_string_at(arr, C.long(i))
		if p == nil {
			continue
		}
		names = append(names, C.GoString(p))
		C.free(unsafe.Pointer(p))
	}
	return Value(names)
}

func (e *element) Perform(action string) error {
	caction := C.CString(action)
	defer C.free(unsafe.Pointer(caction))
	if code := C.gm_perform(e.ref, caction); code != 0 {
		return axError("perform "+action, code)
	}
	return nil
}

func (e *element) Release() {
	if e.released.Swap(true) {
		return
	}
	C.gm_release_element(e.ref)
}

func goString(p *C.char) string {
	if p == nil {
		return ""
	}
	return C.GoString(p)
}

func boolAttr(state C.int, v bool) Attr[bool] {
	switch state {
	case C.GM_PRESENT:
		return Value(v)
	case C.GM_ABSENT:
		return NoValue[bool]()
	default:
		return BadValue[bool]()
	}
}

func stringAttr(state C.int, p *C.char) Attr[string] {
	switch state {
	case C.GM_PRESENT:
		return Value(goString(p))
	case C.GM_ABSENT:
		return NoValue[string]()
	default:
		return BadValue[string]()
	}
}

func intAttr(state C.int, v int) Attr[int] {
	switch state {
	case C.GM_PRESENT:
		return Value(v)
	case C.GM_ABSENT:
		return NoValue[int]()
	default:
		return BadValue[int]()
	}
}

// axErrorNames covers the codes the accessibility API actually returns for
// menu queries.
var axErrorNames = map[int]string{
	-25200: "failure",
	-25201: "illegal argument",
	-25202: "invalid element",
	-25204: "cannot complete",
	-25205: "attribute unsupported",
	-25206: "action unsupported",
	-25208: "not implemented",
	-25211: "accessibility disabled",
	-25212: "no value",
}

func axError(op string, code C.int) error {
	name, ok := axErrorNames[int(code)]
	if !ok {
		name = "unknown"
	}
	return fmt.Errorf("ax: %s: %s (%d)", op, name, int(code))
}
