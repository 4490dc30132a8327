// Released under an MIT license. See LICENSE.

package fd

// _IOR('f', 127, int) from <sys/filio.h>.
const fionread = 0x4004667f
