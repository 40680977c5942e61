//go:build glpk

package glpk

/*
#cgo LDFLAGS: -lglpk
#include <setjmp.h>
#include <stdlib.h>
#include <glpk.h>

extern int solvertermTermHook(void *info, char *s);
extern void solvertermTreeHook(int reason);

static int term_hook(void *info, const char *s) {
	return solvertermTermHook(info, (char *)s);
}

static void install_term_hook(void) {
	glp_term_hook(term_hook, NULL);
}

static void tree_hook(glp_tree *T, void *info) {
	solvertermTreeHook(glp_ios_reason(T));
}

enum { ST_READ = 1, ST_GENERATE, ST_SIMPLEX, ST_INTOPT };

typedef struct {
	int stage;
	int code;
	int fatal;
	int status;
	double obj;
	int mip;
} st_result;

static jmp_buf st_error_env;

static void st_error_hook(void *info) {
	glp_free_env();
	longjmp(st_error_env, 1);
}

static void st_solve(const char *path, int format, st_result *res) {
	glp_prob *volatile P = NULL;
	glp_tran *volatile tran = NULL;
	volatile int stage = ST_READ;
	glp_smcp smcp;
	glp_iocp iocp;

	res->stage = 0;
	res->code = 0;
	res->fatal = 0;
	res->status = GLP_UNDEF;
	res->obj = 0;
	res->mip = 0;

	glp_error_hook(st_error_hook, NULL);
	if (setjmp(st_error_env)) {
		res->fatal = 1;
		res->stage = stage;
		return;
	}

	P = glp_create_prob();
	switch (format) {
	case 0:
		res->code = glp_read_lp(P, NULL, path);
		break;
	case 1:
		res->code = glp_read_mps(P, GLP_MPS_FILE, NULL, path);
		break;
	case 2:
		res->code = glp_read_mps(P, GLP_MPS_DECK, NULL, path);
		break;
	default:
		tran = glp_mpl_alloc_wksp();
		res->code = glp_mpl_read_model(tran, path, 0);
		if (res->code == 0) {
			stage = ST_GENERATE;
			res->code = glp_mpl_generate(tran, NULL);
		}
		if (res->code == 0) {
			glp_mpl_build_prob(tran, P);
		}
		break;
	}
	if (res->code != 0) {
		goto done;
	}

	stage = ST_SIMPLEX;
	glp_init_smcp(&smcp);
	smcp.presolve = GLP_ON;
	res->code = glp_simplex(P, &smcp);
	if (res->code != 0) {
		goto done;
	}
	res->status = glp_get_status(P);
	res->obj = glp_get_obj_val(P);

	if (glp_get_num_int(P) > 0 && res->status == GLP_OPT) {
		stage = ST_INTOPT;
		res->mip = 1;
		glp_init_iocp(&iocp);
		iocp.cb_func = tree_hook;
		res->code = glp_intopt(P, &iocp);
		if (res->code != 0) {
			goto done;
		}
		res->status = glp_mip_status(P);
		res->obj = glp_mip_obj_val(P);
	}

done:
	if (res->code != 0) {
		res->stage = stage;
	}
	if (tran != NULL) {
		glp_mpl_free_wksp(tran);
	}
	glp_delete_prob(P);
	glp_error_hook(NULL, NULL);
}
*/
import "C"

import (
	"runtime"
	"sync"
	"unsafe"
)

// solveMu serializes solves; the error hook's jump buffer is shared.
var solveMu sync.Mutex

// treeEvents collects callback reasons for the running solve. Guarded by solveMu.
var treeEvents TreeEvents

func recordReason(r Reason) {
	if treeEvents != nil {
		treeEvents[r]++
	}
}

var stageNames = map[int]string{
	int(C.ST_READ):     "read",
	int(C.ST_GENERATE): "generate",
	int(C.ST_SIMPLEX):  "simplex",
	int(C.ST_INTOPT):   "intopt",
}

func installNative() {
	C.install_term_hook()
}

// Version returns the linked GLPK version.
func Version() (string, error) {
	return C.GoString(C.glp_version()), nil
}

// SolveFile reads a model and solves it with the simplex method, followed by
// branch-and-cut when the model has integer columns. All solver output goes
// through the installed terminal hook, and branch-and-cut callbacks are
// counted in Result.Tree.
//
// A fatal GLPK error is returned as a *SolveError with Fatal set instead of
// aborting the process.
func SolveFile(path string, format Format) (Result, error) {
	solveMu.Lock()
	defer solveMu.Unlock()

	// GLPK keeps its environment, including the terminal hook, per thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	if gate.Load() != nil {
		installNative()
	}

	cpath := C.CString(path)
	defer C.free(unsafe.Pointer(cpath))

	treeEvents = TreeEvents{}
	defer func() { treeEvents = nil }()

	var res C.st_result
	C.st_solve(cpath, C.int(format), &res)

	if res.fatal != 0 {
		return Result{}, &SolveError{Stage: stageNames[int(res.stage)], Path: path, Fatal: true}
	}
	if res.code != 0 {
		return Result{}, &SolveError{Stage: stageNames[int(res.stage)], Path: path, Code: int(res.code)}
	}
	return Result{
		Status:    SolutionStatus(res.status),
		Objective: float64(res.obj),
		MIP:       res.mip != 0,
		Tree:      treeEvents,
	}, nil
}
