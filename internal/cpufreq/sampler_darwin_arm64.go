//go:build darwin && arm64

package cpufreq

/*
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit -framework IOReport
#include <stdlib.h>
#include <string.h>
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/IOKitLib.h>

// Private API declarations from libIOReport, mirrored from
// original_source/src/osx/CpuFreq.h. There is no public SDK header for
// these; the symbols resolve against the private IOReport framework at
// link time the same way btop's CMake build links it.
typedef struct IOReportSubscription *IOReportSubscriptionRef;
typedef CFDictionaryRef IOReportSampleRef;
typedef CFDictionaryRef IOReportChannelRef;

extern CFMutableDictionaryRef IOReportCopyChannelsInGroup(CFStringRef, CFStringRef, void *, void *);
extern IOReportSubscriptionRef IOReportCreateSubscription(void *a, CFMutableDictionaryRef desiredChannels, CFMutableDictionaryRef *subbedChannels, uint64_t channel_id, CFTypeRef b);
extern CFDictionaryRef IOReportCreateSamples(IOReportSubscriptionRef sub, CFMutableDictionaryRef subbedChannels, CFTypeRef a);
extern CFDictionaryRef IOReportCreateSamplesDelta(CFDictionaryRef prev, CFDictionaryRef current, CFTypeRef a);
extern uint32_t IOReportStateGetCount(IOReportChannelRef ch);
extern uint64_t IOReportStateGetResidency(IOReportChannelRef ch, uint32_t index);
extern CFStringRef IOReportChannelGetChannelName(IOReportChannelRef ch);
extern CFStringRef IOReportStateGetNameForIndex(IOReportChannelRef ch, uint32_t index);
extern int32_t IOReportChannelGetFormat(IOReportChannelRef ch);

// vitals_ioreport_format_state is IOReport's "state" channel-format tag
// (ioreport.cpp's kIOReportFormatState), used to skip non-residency
// channels before the ECPM/PCPM name check.
static const int32_t vitals_ioreport_format_state = 2;

// vitals_cfstring_copy copies a CFStringRef into a NUL-terminated UTF-8
// buffer the caller owns, falling back to CFStringGetCString when the fast
// CFStringGetCStringPtr path returns NULL (as it commonly does for
// programmatically-constructed strings like IOReport's state names).
static char *vitals_cfstring_copy(CFStringRef s) {
	if (s == NULL) {
		return NULL;
	}
	const char *fast = CFStringGetCStringPtr(s, kCFStringEncodingUTF8);
	if (fast != NULL) {
		return strdup(fast);
	}
	CFIndex length = CFStringGetLength(s);
	CFIndex size = CFStringGetMaximumSizeForEncoding(length, kCFStringEncodingUTF8) + 1;
	char *buf = (char *)malloc((size_t)size);
	if (buf == NULL) {
		return NULL;
	}
	if (!CFStringGetCString(s, buf, size, kCFStringEncodingUTF8)) {
		free(buf);
		return NULL;
	}
	return buf;
}

static CFDataRef vitals_copy_prop(io_registry_entry_t entry, const char *name) {
	CFStringRef key = CFStringCreateWithCString(kCFAllocatorDefault, name, kCFStringEncodingUTF8);
	CFDataRef value = (CFDataRef)IORegistryEntryCreateCFProperty(entry, key, kCFAllocatorDefault, 0);
	CFRelease(key);
	return value;
}

static io_registry_entry_t vitals_registry_entry(const char *path) {
	return IORegistryEntryFromPath(kIOMainPortDefault, path);
}
*/
import "C"

import "unsafe"

// voltageStatesKeyPerCluster mirrors CpuFreq.c's hardcoded mapping of
// cluster type to power-manager voltage-state property name.
var voltageStatesKeyPerCluster = [numClusterTypes]string{
	"voltage-states1", // efficiency
	"voltage-states5", // performance
}

type platformState struct {
	pmgr           C.io_registry_entry_t
	subscription   C.IOReportSubscriptionRef
	subbedChannels C.CFMutableDictionaryRef
	prevSample     C.CFDictionaryRef
	channelsKey    C.CFStringRef
	clusterTables  [numClusterTypes][]int
	clusterOfCPU   []ClusterType
}

func (p *platformState) init() bool {
	pmgrPath := C.CString("IODeviceTree:/arm-io/pmgr")
	defer C.free(unsafe.Pointer(pmgrPath))
	pmgr := C.vitals_registry_entry(pmgrPath)
	if pmgr == 0 {
		return false
	}
	p.pmgr = pmgr

	for i, key := range voltageStatesKeyPerCluster {
		cKey := C.CString(key)
		raw := C.vitals_copy_prop(pmgr, cKey)
		C.free(unsafe.Pointer(cKey))
		if raw == 0 {
			p.cleanup()
			return false
		}
		length := C.CFDataGetLength(raw)
		bytes := C.GoBytes(unsafe.Pointer(C.CFDataGetBytePtr(raw)), C.int(length))
		C.CFRelease(C.CFTypeRef(raw))
		p.clusterTables[i] = ParseFrequencyTable(bytes)
	}

	group := C.CFStringCreateWithCString(C.kCFAllocatorDefault, C.CString("CPU Stats"), C.kCFStringEncodingUTF8)
	subgroup := C.CFStringCreateWithCString(C.kCFAllocatorDefault, C.CString("CPU Core Performance States"), C.kCFStringEncodingUTF8)
	channels := C.IOReportCopyChannelsInGroup(group, subgroup, nil, nil)
	C.CFRelease(C.CFTypeRef(group))
	C.CFRelease(C.CFTypeRef(subgroup))
	if channels == 0 {
		p.cleanup()
		return false
	}

	var subbed C.CFMutableDictionaryRef
	sub := C.IOReportCreateSubscription(nil, channels, &subbed, 0, nil)
	C.CFRelease(C.CFTypeRef(channels))
	if sub == nil {
		p.cleanup()
		return false
	}
	p.subscription = sub
	p.subbedChannels = subbed

	channelsKeyC := C.CString("IOReportChannels")
	p.channelsKey = C.CFStringCreateWithCString(C.kCFAllocatorDefault, channelsKeyC, C.kCFStringEncodingUTF8)
	C.free(unsafe.Pointer(channelsKeyC))
	if p.channelsKey == 0 {
		p.cleanup()
		return false
	}
	return true
}

// sample implements spec.md §4.3's get_frequencies: diff the current raw
// sample against the previous one, and for each ECPM/PCPM "state" channel
// accumulate a residency-weighted frequency.
func (p *platformState) sample() (eMHz, pMHz int) {
	samples := C.IOReportCreateSamples(p.subscription, p.subbedChannels, nil)
	if samples == 0 {
		return 0, 0
	}
	if p.prevSample == 0 {
		p.prevSample = samples
		return 0, 0
	}

	delta := C.IOReportCreateSamplesDelta(p.prevSample, samples, nil)
	C.CFRelease(C.CFTypeRef(p.prevSample))
	p.prevSample = samples
	if delta == 0 {
		return 0, 0
	}
	defer C.CFRelease(C.CFTypeRef(delta))

	eRes, pRes := p.residenciesByCluster(delta)
	eMHz = WeightedFrequency(eRes, p.clusterTables[ClusterEfficiency])
	pMHz = WeightedFrequency(pRes, p.clusterTables[ClusterPerformance])
	return eMHz, pMHz
}

// residenciesByCluster walks the delta sample's "IOReportChannels" array
// (ioreport.cpp's process_channel_sample, rewritten without
// IOReportIterate's Objective-C block callback since cgo cannot express
// one): each array entry is itself an IOReportChannelRef dictionary: skip
// anything that isn't a "state"-format channel, keep only the ECPM
// (efficiency) and PCPM (performance) channels, and collect every
// nonzero-residency state by name for WeightedFrequency to parse and
// weight.
func (p *platformState) residenciesByCluster(delta C.CFDictionaryRef) (e, pRes []Residency) {
	raw := C.CFDictionaryGetValue(delta, unsafe.Pointer(p.channelsKey))
	if raw == nil {
		return nil, nil
	}
	if C.CFGetTypeID(C.CFTypeRef(raw)) != C.CFArrayGetTypeID() {
		return nil, nil
	}
	channels := C.CFArrayRef(raw)
	count := C.CFArrayGetCount(channels)
	for i := C.CFIndex(0); i < count; i++ {
		item := C.CFArrayGetValueAtIndex(channels, i)
		if item == nil {
			continue
		}
		ch := C.IOReportChannelRef(item)
		if C.IOReportChannelGetFormat(ch) != C.vitals_ioreport_format_state {
			continue
		}

		var target *[]Residency
		switch cfStringToGo(C.IOReportChannelGetChannelName(ch)) {
		case "ECPM":
			target = &e
		case "PCPM":
			target = &pRes
		default:
			continue
		}

		stateCount := C.IOReportStateGetCount(ch)
		for s := C.uint32_t(0); s < stateCount; s++ {
			residency := uint64(C.IOReportStateGetResidency(ch, s))
			if residency == 0 {
				continue
			}
			name := cfStringToGo(C.IOReportStateGetNameForIndex(ch, s))
			if name == "" {
				continue
			}
			*target = append(*target, Residency{StateName: name, Count: residency})
		}
	}
	return e, pRes
}

// cfStringToGo copies a CFStringRef's UTF-8 contents into a Go string via
// vitals_cfstring_copy, freeing the intermediate C buffer.
func cfStringToGo(s C.CFStringRef) string {
	if s == 0 {
		return ""
	}
	buf := C.vitals_cfstring_copy(s)
	if buf == nil {
		return ""
	}
	defer C.free(unsafe.Pointer(buf))
	return C.GoString(buf)
}

func (p *platformState) cleanup() {
	if p.subscription != nil {
		C.CFRelease(C.CFTypeRef(unsafe.Pointer(p.subscription)))
		p.subscription = nil
	}
	if p.subbedChannels != 0 {
		C.CFRelease(C.CFTypeRef(p.subbedChannels))
		p.subbedChannels = 0
	}
	if p.prevSample != 0 {
		C.CFRelease(C.CFTypeRef(p.prevSample))
		p.prevSample = 0
	}
	if p.channelsKey != 0 {
		C.CFRelease(C.CFTypeRef(p.channelsKey))
		p.channelsKey = 0
	}
	if p.pmgr != 0 {
		C.IOObjectRelease(p.pmgr)
		p.pmgr = 0
	}
}
