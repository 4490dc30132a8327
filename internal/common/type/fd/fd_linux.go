// Released under an MIT license. See LICENSE.

package fd

import "golang.org/x/sys/unix"

const fionread = unix.TIOCINQ
